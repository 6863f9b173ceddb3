package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	JWT      JWTConfig
	Log      LogConfig
	CORS     CORSConfig
	Analyzer AnalyzerConfig
	Import   ImportConfig
	Jama     JamaConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AnalyzerProviderConfig holds settings for a single LLM analysis provider.
type AnalyzerProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// AnalyzerConfig holds LLM analyzer settings with multi-provider support.
type AnalyzerConfig struct {
	Primary   AnalyzerProviderConfig `mapstructure:"primary"`
	Secondary AnalyzerProviderConfig `mapstructure:"secondary"`
	Tertiary  AnalyzerProviderConfig `mapstructure:"tertiary"`
}

// Configured returns the non-empty provider configs in priority order.
func (a *AnalyzerConfig) Configured() []*AnalyzerProviderConfig {
	var out []*AnalyzerProviderConfig
	for _, c := range []*AnalyzerProviderConfig{&a.Primary, &a.Secondary, &a.Tertiary} {
		if c.Provider != "" {
			out = append(out, c)
		}
	}
	return out
}

// ImportConfig holds document import settings. Extra id patterns and field
// labels extend the built-in detection vocabulary for site-specific exports.
type ImportConfig struct {
	ExtraIDPatterns  []string `mapstructure:"extra_id_patterns"`
	ExtraFieldLabels []string `mapstructure:"extra_field_labels"`
}

// JamaConfig holds Jama Connect REST settings.
type JamaConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// Load reads configuration from environment variables with the REQLENS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("REQLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "reqlens")
	v.SetDefault("db.password", "reqlens_secret")
	v.SetDefault("db.name", "reqlens_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.issuer", "reqlens")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Analyzer provider defaults
	v.SetDefault("analyzer.primary.provider", "claude")
	v.SetDefault("analyzer.primary.api_key", "")
	v.SetDefault("analyzer.primary.default_model", "")
	v.SetDefault("analyzer.primary.max_retries", 2)
	v.SetDefault("analyzer.primary.timeout_secs", 120)
	v.SetDefault("analyzer.secondary.provider", "")
	v.SetDefault("analyzer.secondary.api_key", "")
	v.SetDefault("analyzer.secondary.default_model", "")
	v.SetDefault("analyzer.secondary.max_retries", 2)
	v.SetDefault("analyzer.secondary.timeout_secs", 120)
	v.SetDefault("analyzer.tertiary.provider", "")
	v.SetDefault("analyzer.tertiary.api_key", "")
	v.SetDefault("analyzer.tertiary.default_model", "")
	v.SetDefault("analyzer.tertiary.max_retries", 2)
	v.SetDefault("analyzer.tertiary.timeout_secs", 120)

	// Import defaults
	v.SetDefault("import.extra_id_patterns", "")
	v.SetDefault("import.extra_field_labels", "")

	// Jama defaults
	v.SetDefault("jama.base_url", "")
	v.SetDefault("jama.client_id", "")
	v.SetDefault("jama.client_secret", "")
	v.SetDefault("jama.timeout_secs", 30)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                     "REQLENS_SERVER_PORT",
		"server.read_timeout":             "REQLENS_SERVER_READ_TIMEOUT",
		"server.write_timeout":            "REQLENS_SERVER_WRITE_TIMEOUT",
		"server.environment":              "REQLENS_SERVER_ENVIRONMENT",
		"db.host":                         "REQLENS_DB_HOST",
		"db.port":                         "REQLENS_DB_PORT",
		"db.user":                         "REQLENS_DB_USER",
		"db.password":                     "REQLENS_DB_PASSWORD",
		"db.name":                         "REQLENS_DB_NAME",
		"db.sslmode":                      "REQLENS_DB_SSLMODE",
		"db.max_open":                     "REQLENS_DB_MAX_OPEN",
		"db.max_idle":                     "REQLENS_DB_MAX_IDLE",
		"jwt.secret":                      "REQLENS_JWT_SECRET",
		"jwt.access_expiry":               "REQLENS_JWT_ACCESS_EXPIRY",
		"jwt.issuer":                      "REQLENS_JWT_ISSUER",
		"log.level":                       "REQLENS_LOG_LEVEL",
		"log.format":                      "REQLENS_LOG_FORMAT",
		"cors.allowed_origins":            "REQLENS_CORS_ALLOWED_ORIGINS",
		"import.extra_id_patterns":        "REQLENS_IMPORT_EXTRA_ID_PATTERNS",
		"import.extra_field_labels":       "REQLENS_IMPORT_EXTRA_FIELD_LABELS",
		"jama.base_url":                   "REQLENS_JAMA_BASE_URL",
		"jama.client_id":                  "REQLENS_JAMA_CLIENT_ID",
		"jama.client_secret":              "REQLENS_JAMA_CLIENT_SECRET",
		"jama.timeout_secs":               "REQLENS_JAMA_TIMEOUT_SECS",
		"analyzer.primary.provider":       "REQLENS_ANALYZER_PRIMARY_PROVIDER",
		"analyzer.primary.api_key":        "REQLENS_ANALYZER_PRIMARY_API_KEY",
		"analyzer.primary.default_model":  "REQLENS_ANALYZER_PRIMARY_DEFAULT_MODEL",
		"analyzer.primary.max_retries":    "REQLENS_ANALYZER_PRIMARY_MAX_RETRIES",
		"analyzer.primary.timeout_secs":   "REQLENS_ANALYZER_PRIMARY_TIMEOUT_SECS",
		"analyzer.secondary.provider":     "REQLENS_ANALYZER_SECONDARY_PROVIDER",
		"analyzer.secondary.api_key":      "REQLENS_ANALYZER_SECONDARY_API_KEY",
		"analyzer.secondary.default_model": "REQLENS_ANALYZER_SECONDARY_DEFAULT_MODEL",
		"analyzer.secondary.max_retries":  "REQLENS_ANALYZER_SECONDARY_MAX_RETRIES",
		"analyzer.secondary.timeout_secs": "REQLENS_ANALYZER_SECONDARY_TIMEOUT_SECS",
		"analyzer.tertiary.provider":      "REQLENS_ANALYZER_TERTIARY_PROVIDER",
		"analyzer.tertiary.api_key":       "REQLENS_ANALYZER_TERTIARY_API_KEY",
		"analyzer.tertiary.default_model": "REQLENS_ANALYZER_TERTIARY_DEFAULT_MODEL",
		"analyzer.tertiary.max_retries":   "REQLENS_ANALYZER_TERTIARY_MAX_RETRIES",
		"analyzer.tertiary.timeout_secs":  "REQLENS_ANALYZER_TERTIARY_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if REQLENS_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("REQLENS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Import = ImportConfig{
		ExtraIDPatterns:  splitList(v.GetString("import.extra_id_patterns")),
		ExtraFieldLabels: splitList(v.GetString("import.extra_field_labels")),
	}
	cfg.Jama = JamaConfig{
		BaseURL:      v.GetString("jama.base_url"),
		ClientID:     v.GetString("jama.client_id"),
		ClientSecret: v.GetString("jama.client_secret"),
		TimeoutSecs:  v.GetInt("jama.timeout_secs"),
	}
	cfg.Analyzer = AnalyzerConfig{}
	for key, target := range map[string]*AnalyzerProviderConfig{
		"analyzer.primary":   &cfg.Analyzer.Primary,
		"analyzer.secondary": &cfg.Analyzer.Secondary,
		"analyzer.tertiary":  &cfg.Analyzer.Tertiary,
	} {
		*target = AnalyzerProviderConfig{
			Provider:     v.GetString(key + ".provider"),
			APIKey:       v.GetString(key + ".api_key"),
			DefaultModel: v.GetString(key + ".default_model"),
			MaxRetries:   v.GetInt(key + ".max_retries"),
			TimeoutSecs:  v.GetInt(key + ".timeout_secs"),
		}
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret must not be empty")
	}
	return cfg, nil
}

// splitList splits a comma-separated env value into trimmed entries.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
