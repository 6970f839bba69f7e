package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Mode identifies how the connection factory authenticates to the database
type Mode string

const (
	// ModeCredential authenticates with a managed identity access token
	ModeCredential Mode = "credential"
	// ModeStatic authenticates with DB_USER and DB_PASSWORD
	ModeStatic Mode = "static"
	// ModeSQLite opens a local SQLite file, used for development and tests
	ModeSQLite Mode = "sqlite"
)

// Environment variable names
const (
	EnvServer     = "DB_SERVER"
	EnvName       = "DB_NAME"
	EnvUser       = "DB_USER"
	EnvPassword   = "DB_PASSWORD"
	EnvSQLitePath = "DB_SQLITE_PATH"
	EnvTokenCache = "DB_TOKEN_CACHE"
	EnvPort       = "PORT"
	EnvLogLevel   = "LOG_LEVEL"
)

// Config holds process-wide settings. It is built once at startup and treated
// as immutable afterwards.
type Config struct {
	Port     string
	LogLevel string
	Database DatabaseConfig
}

// DatabaseConfig holds connection settings for the connection factory
type DatabaseConfig struct {
	Server     string
	Name       string
	User       string
	Password   string
	SQLitePath string

	Port           int
	ConnectTimeout time.Duration

	// TokenCache reuses an access token until shortly before it expires
	// instead of acquiring one per connection.
	TokenCache bool
}

// ConfigError reports required configuration that is missing for the selected mode
type ConfigError struct {
	Mode    Mode
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required configuration for %s mode: %s", e.Mode, strings.Join(e.Missing, ", "))
}

// Load reads configuration from the environment and validates it
func Load() (*Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom reads configuration through the given viper instance
func LoadFrom(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()

	v.SetDefault(EnvPort, "8080")
	v.SetDefault(EnvLogLevel, "info")
	v.SetDefault(EnvTokenCache, false)

	cfg := &Config{
		Port:     v.GetString(EnvPort),
		LogLevel: v.GetString(EnvLogLevel),
		Database: DatabaseConfig{
			Server:         strings.TrimSpace(v.GetString(EnvServer)),
			Name:           strings.TrimSpace(v.GetString(EnvName)),
			User:           v.GetString(EnvUser),
			Password:       v.GetString(EnvPassword),
			SQLitePath:     strings.TrimSpace(v.GetString(EnvSQLitePath)),
			Port:           1433,
			ConnectTimeout: 30 * time.Second,
			TokenCache:     v.GetBool(EnvTokenCache),
		},
	}

	if err := cfg.Database.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Mode selects the connection mode from the settings that are present
func (c DatabaseConfig) Mode() Mode {
	switch {
	case c.SQLitePath != "":
		return ModeSQLite
	case c.User != "" || c.Password != "":
		return ModeStatic
	default:
		return ModeCredential
	}
}

// Validate checks that every setting required by the selected mode is present
func (c DatabaseConfig) Validate() error {
	mode := c.Mode()

	var missing []string
	if mode != ModeSQLite {
		if c.Server == "" {
			missing = append(missing, EnvServer)
		}
		if c.Name == "" {
			missing = append(missing, EnvName)
		}
	}
	if mode == ModeStatic {
		if c.User == "" {
			missing = append(missing, EnvUser)
		}
		if c.Password == "" {
			missing = append(missing, EnvPassword)
		}
	}

	if len(missing) > 0 {
		return &ConfigError{Mode: mode, Missing: missing}
	}
	return nil
}
