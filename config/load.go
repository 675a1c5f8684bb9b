package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/hupe1980/genemanifest"
	"github.com/hupe1980/genemanifest/ingest"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. GENEMANIFEST_CACHE_ROOT.
const EnvPrefix = "GENEMANIFEST"

// New returns a Viper instance with defaults and environment binding. If path
// is not empty the file is read; its type follows the extension.
func New(path string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}
	return v, nil
}

// Load reads the configuration from path (optional) and the environment.
func Load(path string) (*Config, error) {
	v, err := New(path)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// LoadWithViper unmarshals and validates the configuration held by v.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Logger builds the configured logger.
func (c *Config) Logger() *genemanifest.Logger {
	level := parseLevel(c.Log.Level)
	if strings.EqualFold(c.Log.Format, "json") {
		return genemanifest.NewJSONLogger(level)
	}
	return genemanifest.NewTextLogger(level)
}

// IngestOptions returns the builder options of the ingest section.
func (c *Config) IngestOptions() []func(*ingest.Options) {
	return []func(*ingest.Options){
		ingest.WithChunkSize(c.Ingest.ChunkSize),
		ingest.WithProgressEvery(c.Ingest.ProgressEvery),
		ingest.WithRowGroupBounds(c.Ingest.RowGroupMin, c.Ingest.RowGroupMax),
	}
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
