package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/waldirborbajr/versioncheck/updater"
)

const (
	greenBold  = "\033[1;32m"
	yellowBold = "\033[1;33m"
	reset      = "\033[0m"
)

// printReport prints the outcome of a single update check
func printReport(w io.Writer, res updater.Result) {
	fmt.Fprintln(w, strings.Repeat(".", 20))
	fmt.Fprintln(w, "UPDATE CHECK")
	fmt.Fprintln(w, strings.Repeat(".", 20))
	fmt.Fprintf(w, "  Current version: %s\n", displayVersion(res.CurrentVersion))
	fmt.Fprintf(w, "  Latest version: %s\n", displayVersion(res.LatestVersion))

	if res.UpdateAvailable {
		fmt.Fprintf(w, yellowBold+"  ⚡ Update available: %s"+reset+"\n", res.Summary())
		if res.ReleaseURL != "" {
			fmt.Fprintf(w, "  Release: %s\n", res.ReleaseURL)
		}
	} else {
		fmt.Fprintln(w, greenBold+"  ✅ up to date"+reset)
	}
	fmt.Fprintln(w, strings.Repeat("-", 20))
}

func displayVersion(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
