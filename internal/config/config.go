package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every variable name, e.g. LOTR_INGEST_SOURCE_URL.
const EnvPrefix = "LOTR_INGEST"

const (
	DefaultMaxCharacters = 10000
	DefaultMaxLogEntries = 50
)

// Config holds the settings for the CLI and the TUI.
type Config struct {
	SourceURL string `envconfig:"SOURCE_URL" default:"http://localhost:5001"`
	StoreURL  string `envconfig:"STORE_URL" default:"http://localhost:5001"`

	FetchPath        string `envconfig:"FETCH_PATH" default:"/fetch"`
	IngestPath       string `envconfig:"INGEST_PATH" default:"/ingest"`
	IngestQuotesPath string `envconfig:"INGEST_QUOTES_PATH" default:"/ingest-quotes"`
	WipePath         string `envconfig:"WIPE_PATH" default:"/wipe"`

	// APIToken is sent as a bearer token to both collaborators when set.
	APIToken string        `envconfig:"API_TOKEN"`
	Timeout  time.Duration `envconfig:"TIMEOUT" default:"5m"`

	MaxCharacters int `envconfig:"MAX_CHARACTERS" default:"10000"`
	MaxLogEntries int `envconfig:"MAX_LOG_ENTRIES" default:"50"`

	// Home is where logs, the report journal and UI state live (default ~/.lotr-ingest).
	Home     string `envconfig:"HOME"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads optional dotenv files (".env" when none are given) and then the
// environment. Missing dotenv files are not an error.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if strings.TrimSpace(cfg.Home) == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.Home = filepath.Join(h, ".lotr-ingest")
	}
	return cfg, nil
}

// Validate reports every problem at once rather than stopping at the first.
func (c Config) Validate() error {
	var errs []error
	if err := checkURL("source url", c.SourceURL); err != nil {
		errs = append(errs, err)
	}
	if err := checkURL("store url", c.StoreURL); err != nil {
		errs = append(errs, err)
	}
	for name, p := range map[string]string{
		"fetch path":         c.FetchPath,
		"ingest path":        c.IngestPath,
		"ingest quotes path": c.IngestQuotesPath,
		"wipe path":          c.WipePath,
	} {
		if !strings.HasPrefix(p, "/") {
			errs = append(errs, fmt.Errorf("%s must start with '/': %q", name, p))
		}
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive: %s", c.Timeout))
	}
	if c.MaxCharacters < 1 {
		errs = append(errs, fmt.Errorf("max characters must be positive: %d", c.MaxCharacters))
	}
	if c.MaxLogEntries < 1 {
		errs = append(errs, fmt.Errorf("max log entries must be positive: %d", c.MaxLogEntries))
	}
	if strings.TrimSpace(c.Home) == "" {
		errs = append(errs, errors.New("home directory is empty"))
	}
	return errors.Join(errs...)
}

func checkURL(name, raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be http(s): %q", name, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s has no host: %q", name, raw)
	}
	return nil
}

func (c Config) LogDir() string      { return filepath.Join(c.Home, "logs") }
func (c Config) JournalPath() string { return filepath.Join(c.Home, "reports.sqlite") }
func (c Config) StateDir() string    { return filepath.Join(c.Home, "state") }
