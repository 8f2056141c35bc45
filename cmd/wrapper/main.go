//go:build wrapper
// +build wrapper

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/waldirborbajr/versioncheck/config"
	"github.com/waldirborbajr/versioncheck/logger"
	"github.com/waldirborbajr/versioncheck/updater"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		printConfigError(err)
		os.Exit(1)
	}

	// Init logger
	log := logger.InitLogger(logger.Options{Debug: cfg.DebugMode, File: cfg.LogFile})
	cfg.LogLoaded(log)

	if cfg.CurrentVersion == "" {
		log.Warn().Msg("CURRENT_VERSION is not set")
		fmt.Fprintln(os.Stderr, "Warning: CURRENT_VERSION is not set; the checker will fall back to the build version.")
	}

	// Check release endpoint
	info, err := updater.NewChecker(cfg).FetchLatest(context.Background())
	if err != nil {
		log.Error().Err(err).Str("url", cfg.UpdateCheckURL).Msg("Release endpoint check failed")
		printEndpointTips(err, cfg)
		os.Exit(2)
	}
	log.Info().Str("latest", info.Version).Msg("Release endpoint check OK")

	log.Info().Msg("All startup checks passed. The update banner can be served.")
	fmt.Printf("All startup checks passed. Latest release: %s\n", info.Version)
}

func printConfigError(err error) {
	fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
	if strings.Contains(err.Error(), "UPDATE_CHECK_URL") {
		fmt.Fprintln(os.Stderr, "Suggested action: set UPDATE_CHECK_URL to an http(s) release endpoint, e.g. https://github.com/<owner>/<repo>/releases/latest")
	}
	if strings.Contains(err.Error(), "UPDATE_CHECK_TIMEOUT") {
		fmt.Fprintln(os.Stderr, "Suggested action: set UPDATE_CHECK_TIMEOUT to a positive duration such as 10s")
	}
	fmt.Fprintln(os.Stderr, "Tip: run with DEBUG_MODE=true for more detailed logs.")
}

func printEndpointTips(err error, cfg config.Config) {
	fmt.Fprintf(os.Stderr, "Release endpoint check error: %v\n", err)
	fmt.Fprintln(os.Stderr, "Suggested actions:")
	switch {
	case errors.Is(err, updater.ErrUnexpectedStatus):
		fmt.Fprintln(os.Stderr, " - Verify the repository exists and has at least one published (non-draft) release")
		fmt.Fprintln(os.Stderr, " - A 403 from api.github.com usually means the anonymous rate limit was hit; retry later")
	case errors.Is(err, updater.ErrNoVersion):
		fmt.Fprintln(os.Stderr, " - The endpoint answered without a tag_name or version field; check UPDATE_CHECK_URL points at release metadata")
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(os.Stderr, " - The request exceeded UPDATE_CHECK_TIMEOUT (%s); raise it or check network latency\n", cfg.CheckTimeout)
	default:
		fmt.Fprintln(os.Stderr, " - Verify this host can reach "+cfg.UpdateCheckURL+" (DNS, proxy, firewall)")
	}
	fmt.Fprintln(os.Stderr, " - For more details, set DEBUG_MODE=true and re-run the checks to get detailed logs")
}
