package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// DefaultUpdateCheckURL is the release endpoint used when UPDATE_CHECK_URL is unset
const DefaultUpdateCheckURL = "https://api.github.com/repos/Stirling-Tools/Stirling-PDF/releases/latest"

const (
	defaultTimeout    = 10 * time.Second
	defaultListenAddr = ":8080"
)

// Config holds the update check settings
type Config struct {
	CurrentVersion string        // Version of the running application
	UpdateCheckURL string        // Release metadata endpoint (GitHub API, releases page or JSON manifest)
	CheckTimeout   time.Duration // Upper bound for a single fetch
	DebugMode      bool
	LogFile        string // Rotated log file, empty for console only
	ListenAddr     string // Address used by the serve command

	// Collected while loading, before the logger exists; see LogLoaded
	envFileLoaded bool
	warnings      []warning
}

// warning is a non-fatal problem found while loading, e.g. an invalid boolean
type warning struct {
	key   string
	value string
	err   error
	msg   string
}

// LoadConfig loads environment variables, reading the given .env files first.
// With no files it reads ./.env; a missing default .env is not an error.
//
// Nothing is logged here since the logger depends on the loaded settings;
// call LogLoaded once the logger is initialized.
func LoadConfig(envFiles ...string) (Config, error) {
	var cfg Config

	if err := godotenv.Load(envFiles...); err != nil {
		if len(envFiles) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("error loading .env file: %w", err)
		}
	} else {
		cfg.envFileLoaded = true
	}

	debugMode, err := parseBool("DEBUG_MODE")
	if err != nil {
		cfg.warnings = append(cfg.warnings, warning{
			key:   "DEBUG_MODE",
			value: os.Getenv("DEBUG_MODE"),
			err:   err,
			msg:   "Invalid DEBUG_MODE value, defaulting to false",
		})
	}

	timeout := defaultTimeout
	if raw := strings.TrimSpace(os.Getenv("UPDATE_CHECK_TIMEOUT")); raw != "" {
		timeout, err = time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid UPDATE_CHECK_TIMEOUT %q: %w", raw, err)
		}
	}

	cfg.CurrentVersion = strings.TrimSpace(os.Getenv("CURRENT_VERSION"))
	cfg.UpdateCheckURL = strings.TrimSpace(os.Getenv("UPDATE_CHECK_URL"))
	cfg.CheckTimeout = timeout
	cfg.DebugMode = debugMode
	cfg.LogFile = os.Getenv("LOG_FILE")
	cfg.ListenAddr = os.Getenv("LISTEN_ADDR")
	if cfg.UpdateCheckURL == "" {
		cfg.UpdateCheckURL = DefaultUpdateCheckURL
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaultListenAddr
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LogLoaded reports the warnings collected by LoadConfig and dumps the
// loaded configuration at debug level
func (c Config) LogLoaded(log zerolog.Logger) {
	for _, w := range c.warnings {
		log.Warn().Err(w.err).Str(w.key, w.value).Msg(w.msg)
	}

	if c.envFileLoaded {
		log.Debug().Msg(".env file loaded successfully")
	} else {
		log.Debug().Msg("No .env file found, using environment only")
	}

	// Log loaded configuration for troubleshooting
	log.Debug().
		Str("CURRENT_VERSION", c.CurrentVersion).
		Str("UPDATE_CHECK_URL", c.UpdateCheckURL).
		Dur("UPDATE_CHECK_TIMEOUT", c.CheckTimeout).
		Bool("DEBUG_MODE", c.DebugMode).
		Str("LOG_FILE", c.LogFile).
		Str("LISTEN_ADDR", c.ListenAddr).
		Msg("Configuration loaded")
}

// Validate checks the fields that would make every check fail
func (c Config) Validate() error {
	u, err := url.Parse(c.UpdateCheckURL)
	if err != nil {
		return fmt.Errorf("invalid UPDATE_CHECK_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid UPDATE_CHECK_URL %q: scheme must be http or https", c.UpdateCheckURL)
	}
	if c.CheckTimeout <= 0 {
		return fmt.Errorf("invalid UPDATE_CHECK_TIMEOUT %s: must be positive", c.CheckTimeout)
	}
	return nil
}

func parseBool(key string) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
