package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config holds the configuration for the LearnHub server.
type Config struct {
	// Listen is the address the server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// DataDir is the directory holding the JSON documents of the file-backed store.
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`
	// WebDir is the directory holding the static frontend build.
	WebDir string `yaml:"web_dir" mapstructure:"web_dir"`
	// UploadsDir is the directory profile pictures are written to.
	UploadsDir string `yaml:"uploads_dir" mapstructure:"uploads_dir"`
	// DatabaseURL is the PostgreSQL connection string, used by the database-backed variant only.
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	// LogLevel is the log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
// Every value can be overridden with a LEARNHUB_ prefixed environment variable;
// PORT and DATABASE_URL are honored as-is for deploy-platform compatibility.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("LEARNHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Hosting platforms hand out PORT and DATABASE_URL without a prefix.
	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("database_url", "LEARNHUB_DATABASE_URL", "DATABASE_URL")

	var configFileFound bool
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.learnhub")
		v.AddConfigPath("/etc/learnhub")
	}

	if err := v.ReadInConfig(); err != nil {
		// If no config file is found, use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileFound = true
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if port := v.GetString("port"); port != "" {
		c.Listen = ":" + port
	}

	if configFileFound {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with LEARNHUB_ prefix will override config file values")
	}

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:3001")
	v.SetDefault("data_dir", "./data")
	v.SetDefault("web_dir", "./public")
	v.SetDefault("uploads_dir", "./public/uploads")
	v.SetDefault("database_url", "")
	v.SetDefault("log_level", "info")
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data dir is required")
	}
	if c.WebDir == "" {
		return fmt.Errorf("web dir is required")
	}
	if c.UploadsDir == "" {
		return fmt.Errorf("uploads dir is required")
	}
	return nil
}
