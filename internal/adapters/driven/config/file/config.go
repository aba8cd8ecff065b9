package file

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/tramites/internal/connectors/gobec"
	"github.com/custodia-labs/tramites/internal/core/domain"
)

// Store kinds.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
	StoreAstra  = "astra"
)

// Environment variables that override the file.
const (
	EnvBaseURL       = "TRAMITES_BASE_URL"
	EnvStore         = "TRAMITES_STORE"
	EnvAstraEndpoint = "ASTRA_ENDPOINT"
	EnvAstraToken    = "ASTRA_TOKEN"
)

// Duration is a time.Duration written as a Go duration string ("20s").
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", b, err)
	}
	*d = Duration(v)
	return nil
}

// Config is the full CLI configuration.
type Config struct {
	API    APIConfig    `toml:"api"`
	Scrape ScrapeConfig `toml:"scrape"`
	Store  StoreConfig  `toml:"store"`
}

// APIConfig configures the gob.ec client.
type APIConfig struct {
	BaseURL   string   `toml:"base_url"`
	Timeout   Duration `toml:"timeout"`
	UserAgent string   `toml:"user_agent"`
}

// ScrapeConfig configures the scrape run.
type ScrapeConfig struct {
	Provinces        []string `toml:"provinces"`
	TargetYear       int      `toml:"target_year"`
	MaxPages         int      `toml:"max_pages"`
	TramiteMaxPages  int      `toml:"tramite_max_pages"`
	InstitutionDelay Duration `toml:"institution_delay"`
	TramiteDelay     Duration `toml:"tramite_delay"`
	InstitutionsCSV  string   `toml:"institutions_csv"`
	TramitesCSV      string   `toml:"tramites_csv"`
}

// StoreConfig selects and configures the document store.
type StoreConfig struct {
	Kind    string      `toml:"kind"`
	DataDir string      `toml:"data_dir"`
	Astra   AstraConfig `toml:"astra"`
}

// AstraConfig holds Astra Data API settings.
type AstraConfig struct {
	Endpoint string `toml:"endpoint"`
	Keyspace string `toml:"keyspace"`
	Token    string `toml:"token"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:   gobec.DefaultBaseURL,
			Timeout:   Duration(gobec.DefaultTimeout),
			UserAgent: gobec.DefaultUserAgent,
		},
		Scrape: ScrapeConfig{
			Provinces:        append([]string(nil), domain.DefaultProvinces...),
			TargetYear:       domain.DefaultTargetYear,
			MaxPages:         150,
			TramiteMaxPages:  40,
			InstitutionDelay: Duration(100 * time.Millisecond),
			TramiteDelay:     Duration(50 * time.Millisecond),
			InstitutionsCSV:  "instituciones_filtradas.csv",
		},
		Store: StoreConfig{
			Kind: StoreSQLite,
			Astra: AstraConfig{
				Keyspace: "default_keyspace",
			},
		},
	}
}

// ApplyEnv overrides fields from the environment. getenv is usually
// os.Getenv; empty values are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvBaseURL); v != "" {
		c.API.BaseURL = v
	}
	if v := getenv(EnvStore); v != "" {
		c.Store.Kind = v
	}
	if v := getenv(EnvAstraEndpoint); v != "" {
		c.Store.Astra.Endpoint = v
	}
	if v := getenv(EnvAstraToken); v != "" {
		c.Store.Astra.Token = v
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), domain.ErrInvalidInput))
	}

	if strings.TrimSpace(c.API.BaseURL) == "" {
		invalid("api.base_url is empty")
	}
	if c.API.Timeout < 0 {
		invalid("api.timeout is negative")
	}
	if len(c.Scrape.Provinces) == 0 {
		invalid("scrape.provinces is empty")
	}
	if c.Scrape.TargetYear < 1900 {
		invalid("scrape.target_year %d is before 1900", c.Scrape.TargetYear)
	}
	if c.Scrape.MaxPages <= 0 {
		invalid("scrape.max_pages must be positive, got %d", c.Scrape.MaxPages)
	}
	if c.Scrape.TramiteMaxPages <= 0 {
		invalid("scrape.tramite_max_pages must be positive, got %d", c.Scrape.TramiteMaxPages)
	}
	if c.Scrape.InstitutionDelay < 0 || c.Scrape.TramiteDelay < 0 {
		invalid("scrape delays must not be negative")
	}

	switch c.Store.Kind {
	case StoreSQLite, StoreMemory:
	case StoreAstra:
		if c.Store.Astra.Endpoint == "" {
			invalid("store.astra.endpoint is required for the astra store")
		}
		if c.Store.Astra.Token == "" {
			invalid("store.astra.token is required for the astra store")
		}
	default:
		invalid("store.kind %q is not one of sqlite, memory, astra", c.Store.Kind)
	}

	return errors.Join(errs...)
}
