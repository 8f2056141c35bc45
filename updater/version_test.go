package updater

import (
	"testing"
	"unicode/utf8"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		v1   string
		v2   string
		want int
	}{
		{"1.2.3", "1.2.3", 0},
		{"1.0.1", "1.0.0", 1},
		{"1.0.0", "1.0.1", -1},
		{"1.10.0", "1.9.9", 1}, // numeric, not lexicographic
		{"0.9.9", "1.0.0", -1},
		{"2.0", "2.0.0", 0}, // missing trailing segments
		{"2.0.0.1", "2.0", 1},
		{"1.0", "1.0.1", -1},
		{"12abc.1", "12.1", 0}, // leading digits are kept
		{"1.0.a", "1.0.0", 0},
		{" 3.1", "3.1", 0},
		{"abc", "1.0", 0},
		{"abc", "0.0.0", 0},
		{"", "1.0.0", 0},
		{"", "", 0},
		{"99999999999999999999", "1", 1},
	}

	for _, tt := range tests {
		got := CompareVersions(tt.v1, tt.v2)
		if got != tt.want {
			t.Errorf("CompareVersions(%q, %q) = %d; want %d", tt.v1, tt.v2, got, tt.want)
		}
	}
}

func TestCompareVersionsAntisymmetric(t *testing.T) {
	versions := []string{"", "abc", "0", "0.0.0", "1", "1.0", "1.0.1", "1.2.3", "1.9.9", "1.10.0", "2", "v2.0", "10.0.0-rc1"}

	for _, a := range versions {
		for _, b := range versions {
			ab := CompareVersions(a, b)
			ba := CompareVersions(b, a)
			if ab != -ba {
				t.Fatalf("CompareVersions(%q, %q) = %d but CompareVersions(%q, %q) = %d", a, b, ab, b, a, ba)
			}
			if a == b && ab != 0 {
				t.Fatalf("CompareVersions(%q, %q) = %d; want 0", a, b, ab)
			}
		}
	}
}

func TestIsNewer(t *testing.T) {
	tests := []struct {
		current string
		latest  string
		want    bool
	}{
		{"1.0.0", "1.0.1", true},
		{"1.0.0", "1.0.0", false},
		{"1.0.1", "1.0.0", false},
		{"1.0.0", "1.1.0", true},
		{"1.0", "1.0.1", true},
		{"1.0.0", "1.0", false},
		{"1.0.0", "1.0.0.1", true},
		{"1.0.0", "", false},
		{"", "1.0.0", false},
	}

	for _, tt := range tests {
		got := IsNewer(tt.current, tt.latest)
		if got != tt.want {
			t.Errorf("IsNewer(%q, %q) = %v; want %v", tt.current, tt.latest, got, tt.want)
		}
	}
}

func TestStripTagPrefixMultiByteMarker(t *testing.T) {
	got := StripTagPrefix("é1.2.0")
	if !utf8.ValidString(got) {
		t.Fatalf("StripTagPrefix(%q) = %q; not valid UTF-8", "é1.2.0", got)
	}
	if CompareVersions(got, "1.0.0") != 1 {
		t.Fatalf("CompareVersions(%q, %q) = %d; want 1", got, "1.0.0", CompareVersions(got, "1.0.0"))
	}
}

func TestStripTagPrefix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"v1.0.0", "1.0.0"},
		{"1.0.0", "1.0.0"},
		{" v1.0.0 ", "1.0.0"},
		{"V2.3", "2.3"},
		{"é1.2.0", "1.2.0"},
		{"→3.0", "3.0"},
		{"v", ""},
		{"", ""},
	}

	for _, tt := range tests {
		got := StripTagPrefix(tt.input)
		if got != tt.want {
			t.Errorf("StripTagPrefix(%q) = %q; want %q", tt.input, got, tt.want)
		}
	}
}
