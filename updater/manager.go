package updater

import (
	"context"

	"github.com/waldirborbajr/versioncheck/config"
	"github.com/waldirborbajr/versioncheck/logger"
)

// VersionChecker runs a single update check; *Checker is the production implementation
type VersionChecker interface {
	Check(ctx context.Context, current string) Result
}

// Applier receives the outcome of a check, e.g. a page that toggles its update banner
type Applier interface {
	Reset()
	Apply(Result)
}

// RunUpdateFlow runs one check against the configured endpoint, see RunCheck
func RunUpdateFlow(ctx context.Context, currentVersion string, cfg config.Config, target Applier) Result {
	return RunCheck(ctx, NewChecker(cfg), currentVersion, target)
}

// RunCheck resets the target to its hidden state, runs one check and applies
// the result. A nil target only runs the check.
func RunCheck(ctx context.Context, checker VersionChecker, currentVersion string, target Applier) Result {
	log := logger.GetLogger()

	if target != nil {
		target.Reset()
	}

	res := checker.Check(ctx, currentVersion)
	if res.UpdateAvailable {
		log.Info().Str("current", res.CurrentVersion).Str("latest", res.LatestVersion).Msg("Newer version available")
	} else {
		log.Debug().Str("current", currentVersion).Str("remote", res.LatestVersion).Msg("No newer version found")
	}

	if target != nil {
		target.Apply(res)
	}
	return res
}
