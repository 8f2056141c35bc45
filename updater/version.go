package updater

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CompareVersions compares two dot-separated versions segment by segment.
// It returns 1 if v1 > v2, -1 if v1 < v2 and 0 if they are equal.
//
// Missing or non-numeric segments count as 0, so "2.0" equals "2.0.0".
// A version with no numeric segment at all ("", "abc") carries no
// information and compares equal to any other version.
func CompareVersions(v1, v2 string) int {
	p1, ok1 := parseSegments(v1)
	p2, ok2 := parseSegments(v2)
	if !ok1 || !ok2 {
		return 0
	}

	for i := 0; i < len(p1) || i < len(p2); i++ {
		var n1, n2 int64
		if i < len(p1) {
			n1 = p1[i]
		}
		if i < len(p2) {
			n2 = p2[i]
		}
		if n1 > n2 {
			return 1
		}
		if n1 < n2 {
			return -1
		}
	}
	return 0
}

// IsNewer reports whether latest is a strictly newer release than current.
// An empty latest never counts as an update.
func IsNewer(current, latest string) bool {
	if latest == "" {
		return false
	}
	return CompareVersions(latest, current) > 0
}

// parseSegments splits v on "." and parses each part leniently. ok is false
// when no part holds a number.
func parseSegments(v string) (nums []int64, ok bool) {
	parts := strings.Split(v, ".")
	nums = make([]int64, len(parts))
	for i, p := range parts {
		n, valid := parseSegment(p)
		nums[i] = n
		ok = ok || valid
	}
	return nums, ok
}

// parseSegment reads an optional sign and the leading digits of s, skipping
// leading whitespace: "12abc" is 12, "rc1" is not a number.
func parseSegment(s string) (int64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		// Only range errors are possible here; saturate
		if s[0] == '-' {
			return math.MinInt64, true
		}
		return math.MaxInt64, true
	}
	return n, true
}

// StripTagPrefix removes a single leading non-numeric marker from a release
// tag, e.g. "v1.2.3" becomes "1.2.3". The marker may be any rune.
func StripTagPrefix(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	if r, size := utf8.DecodeRuneInString(tag); !unicode.IsDigit(r) {
		return tag[size:]
	}
	return tag
}
