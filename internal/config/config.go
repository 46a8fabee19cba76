package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Conf holds the application configuration, making it accessible globally.
var Conf *Config

// Config struct is the top-level configuration structure.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Telemetry   TelemetryConfig   `mapstructure:"telemetry"`
	Aggregation AggregationConfig `mapstructure:"aggregation"`
	Generator   GeneratorConfig   `mapstructure:"generator"`
}

// ServerConfig holds server-related settings.
type ServerConfig struct {
	Port             string `mapstructure:"port"`
	SessionSecret    string `mapstructure:"session_secret"`
	AggregationToken string `mapstructure:"aggregation_token"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

// LoggingConfig holds settings for the logger.
type LoggingConfig struct {
	Directory  string `mapstructure:"directory"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// TelemetryConfig controls the engine-side keystroke flush policy.
type TelemetryConfig struct {
	FlushSize       int `mapstructure:"flush_size"`
	FlushIntervalMs int `mapstructure:"flush_interval_ms"`
}

// AggregationConfig controls the weakness-profile job.
type AggregationConfig struct {
	WindowDays int    `mapstructure:"window_days"`
	BatchCap   int    `mapstructure:"batch_cap"`
	Workers    int    `mapstructure:"workers"`
	DailyAt    string `mapstructure:"daily_at"`
}

// GeneratorConfig controls adaptive word generation.
type GeneratorConfig struct {
	PoolFile        string  `mapstructure:"pool_file"`
	WeakProbability float64 `mapstructure:"weak_probability"`
	TopWeaknesses   int     `mapstructure:"top_weaknesses"`
}

// setDefaults sets the default values for the configuration.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "5050")
	v.SetDefault("server.session_secret", "change-me-in-production")
	v.SetDefault("server.aggregation_token", "")

	// Database defaults
	v.SetDefault("database.host", "db")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "user")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.dbname", "snailtype-db")

	// Logging defaults
	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.max_size", 10)   // 10 MB
	v.SetDefault("logging.max_backups", 3) // Keep 3 backups
	v.SetDefault("logging.max_age", 7)     // 7 days
	v.SetDefault("logging.compress", true) // Compress old logs

	// Telemetry flush policy
	v.SetDefault("telemetry.flush_size", 50)
	v.SetDefault("telemetry.flush_interval_ms", 2000)

	// Aggregation job
	v.SetDefault("aggregation.window_days", 30)
	v.SetDefault("aggregation.batch_cap", 100)
	v.SetDefault("aggregation.workers", 4)
	v.SetDefault("aggregation.daily_at", "03:30")

	// Word generation
	v.SetDefault("generator.pool_file", "config/wordpools.yaml")
	v.SetDefault("generator.weak_probability", 0.6)
	v.SetDefault("generator.top_weaknesses", 5)
}

// Init initializes the configuration with Viper.
func Init(projectRoot string, log *zap.Logger) error {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// --- File Configuration ---
	v.AddConfigPath(filepath.Join(projectRoot, "config"))
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// --- Environment Variable Binding ---
	v.SetEnvPrefix("SNAILTYPE") // e.g., SNAILTYPE_SERVER_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read the initial configuration from the file.
	// It's okay if the file doesn't exist; defaults and env vars will be used.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Unmarshal the config into our global Conf variable
	if err := v.Unmarshal(&Conf); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// Set up a watch for configuration changes for hot-reloading
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Info("Configuration file changed, reloading.", zap.String("file", e.Name))
		if err := v.Unmarshal(&Conf); err != nil {
			log.Error("Error reloading configuration", zap.Error(err))
		}
	})

	log.Info("Configuration loaded successfully")
	return nil
}
