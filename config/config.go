// Package config loads genemanifest settings from defaults, an optional
// TOML/YAML file and GENEMANIFEST_* environment variables, in that order of
// precedence.
package config

// Config is the complete configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Ingest IngestConfig `mapstructure:"ingest"`
	Remote RemoteConfig `mapstructure:"remote"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text or json
}

// CacheConfig configures the local object cache.
type CacheConfig struct {
	Root string `mapstructure:"root"`
}

// IngestConfig configures manifest generation.
type IngestConfig struct {
	ChunkSize     int    `mapstructure:"chunk_size"`
	ProgressEvery int    `mapstructure:"progress_every"`
	RowGroupMin   int    `mapstructure:"row_group_min"`
	RowGroupMax   int    `mapstructure:"row_group_max"`
	Compression   string `mapstructure:"compression"`
	Pattern       string `mapstructure:"pattern"`
}

// RemoteConfig selects and configures the object store.
type RemoteConfig struct {
	Provider  string `mapstructure:"provider"` // s3, minio or local
	Region    string `mapstructure:"region"`
	Profile   string `mapstructure:"profile"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	// LocalRoot is the directory holding one subdirectory per bucket for the
	// local provider.
	LocalRoot string `mapstructure:"local_root"`
	// DownloadConcurrency is the number of parallel part downloads (s3).
	DownloadConcurrency int `mapstructure:"download_concurrency"`
}
