package updater

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/waldirborbajr/versioncheck/config"
	"github.com/waldirborbajr/versioncheck/logger"
)

var (
	// ErrNoVersion is returned when the release metadata carries no tag or version
	ErrNoVersion = errors.New("release metadata has no version")
	// ErrUnexpectedStatus is returned for any non-200 answer from the endpoint
	ErrUnexpectedStatus = errors.New("unexpected status code")
)

const defaultUserAgent = "versioncheck"

// UpdateInfo traz a versão mais recente e a URL da release
type UpdateInfo struct {
	Version string `json:"version"`
	URL     string `json:"url"`
}

// Result is the outcome of a single update check
type Result struct {
	CurrentVersion  string    `json:"current_version"`
	LatestVersion   string    `json:"latest_version"`
	UpdateAvailable bool      `json:"update_available"`
	ReleaseURL      string    `json:"release_url,omitempty"`
	CheckedAt       time.Time `json:"checked_at"`
	Err             error     `json:"-"`
}

// Summary returns the "current => latest" text shown next to the update link
func (r Result) Summary() string {
	return r.CurrentVersion + " => " + r.LatestVersion
}

// Checker queries a release endpoint for the latest published version
type Checker struct {
	URL       string
	Client    *http.Client
	UserAgent string
	Timeout   time.Duration
}

// NewChecker builds a Checker from the loaded configuration
func NewChecker(cfg config.Config) *Checker {
	return &Checker{
		URL:     cfg.UpdateCheckURL,
		Client:  http.DefaultClient,
		Timeout: cfg.CheckTimeout,
	}
}

// Check fetches the latest version and compares it with current. Failures are
// logged and reported as "no update available"; they are kept in Result.Err.
func (c *Checker) Check(ctx context.Context, current string) Result {
	log := logger.GetLogger()

	res := Result{CurrentVersion: current, CheckedAt: time.Now()}
	isNew, info, err := c.CheckForUpdateWithContext(ctx, current)
	if err != nil {
		log.Warn().Err(err).Str("url", c.URL).Msg("Failed to fetch latest version")
		res.Err = err
		return res
	}

	res.LatestVersion = info.Version
	res.ReleaseURL = info.URL
	res.UpdateAvailable = isNew

	log.Debug().
		Str("current", current).
		Str("latest", info.Version).
		Bool("update_available", isNew).
		Msg("Update check finished")
	return res
}

// LatestVersion returns the latest released version, or "" when it cannot be fetched
func (c *Checker) LatestVersion(ctx context.Context) string {
	info, err := c.FetchLatest(ctx)
	if err != nil {
		logger.Warn().Err(err).Str("url", c.URL).Msg("Failed to fetch latest version")
		return ""
	}
	return info.Version
}

// CheckForUpdateWithContext consulta o endpoint configurado e informa se há uma nova versão com contexto
func (c *Checker) CheckForUpdateWithContext(ctx context.Context, current string) (bool, UpdateInfo, error) {
	info, err := c.FetchLatest(ctx)
	if err != nil {
		return false, UpdateInfo{}, err
	}
	return IsNewer(current, info.Version), info, nil
}

// FetchLatest retrieves the latest release metadata with the prefix stripped from its tag
func (c *Checker) FetchLatest(ctx context.Context) (UpdateInfo, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	urlStr := c.URL
	if strings.TrimSpace(urlStr) == "" {
		urlStr = config.DefaultUpdateCheckURL
	}
	// GitHub releases pages are served through the public API
	if owner, repo, ok := parseGithubOwnerRepo(urlStr); ok {
		urlStr = fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", owner, repo)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return UpdateInfo{}, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	ua := c.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return UpdateInfo{}, fmt.Errorf("error while checking update: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return UpdateInfo{}, fmt.Errorf("%w %d from %s", ErrUnexpectedStatus, resp.StatusCode, urlStr)
	}

	// Accepts both the GitHub release shape and a {"version","url"} manifest
	var meta struct {
		TagName string `json:"tag_name"`
		HTMLURL string `json:"html_url"`
		Version string `json:"version"`
		URL     string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return UpdateInfo{}, fmt.Errorf("error decoding release info: %w", err)
	}

	tag := meta.TagName
	if tag == "" {
		tag = meta.Version
	}
	info := UpdateInfo{Version: StripTagPrefix(tag), URL: meta.HTMLURL}
	if info.URL == "" {
		info.URL = meta.URL
	}
	if info.Version == "" {
		return UpdateInfo{}, ErrNoVersion
	}

	logger.Debug().Str("remote_version", info.Version).Str("release_url", info.URL).Msg("Update info retrieved")
	return info, nil
}

// parseGithubOwnerRepo tenta extrair owner e repo de URLs de releases do GitHub
func parseGithubOwnerRepo(u string) (owner, repo string, ok bool) {
	// exemplos válidos:
	// https://github.com/owner/repo/releases
	// https://github.com/owner/repo/releases/latest
	parts := strings.Split(strings.TrimPrefix(u, "https://"), "/")
	if len(parts) < 4 {
		return "", "", false
	}
	if parts[0] != "github.com" || parts[3] != "releases" {
		return "", "", false
	}
	if parts[1] == "" || parts[2] == "" {
		return "", "", false
	}
	return parts[1], parts[2], true
}
