// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig                 `mapstructure:"app"`
	Pipeline  PipelineConfig            `mapstructure:"pipeline"`
	Providers map[string]ProviderConfig `mapstructure:"providers"`
	Sources   map[string]SourceConfig   `mapstructure:"sources"`
	Database  DatabaseConfig            `mapstructure:"database"`
	Registry  RegistryConfig            `mapstructure:"registry"`
	Logging   LoggingConfig             `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// PipelineConfig bounds the fan-out behaviour shared by the provider gateway
// and the source crawler.
type PipelineConfig struct {
	MaxConcurrency int `mapstructure:"max_concurrency"`
	TaskTimeout    int `mapstructure:"task_timeout"`    // milliseconds
	MaxRetries     int `mapstructure:"max_retries"`     // per task
	RetryBackoff   int `mapstructure:"retry_backoff"`   // milliseconds, initial
	CacheTTL       int `mapstructure:"cache_ttl"`       // milliseconds
	MinSourceDelay int `mapstructure:"min_source_delay"` // milliseconds between requests per source
}

// ProviderConfig describes one text-generation provider. A provider without
// an API key is not viable and is excluded from the capability list.
type ProviderConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// SourceConfig describes one content source feed.
type SourceConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	BaseURL string  `mapstructure:"base_url"`
	APIKey  string  `mapstructure:"api_key"`
	Weight  float64 `mapstructure:"weight"`
	Limit   int     `mapstructure:"limit"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	SSLEnabled bool     `mapstructure:"ssl_enabled"`
	Index      string   `mapstructure:"index"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RegistryConfig points to the capability registry file.
type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
