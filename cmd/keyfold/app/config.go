package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from flags, environment
// variables, .env files, and the config file.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// File paths and table handling
	Input        string
	Output       string
	Intermediate string
	GroupsFile   string
	Delimiter    string
	Preview      bool

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (handled by cobra)
//  2. Environment variables
//  3. .env files
//  4. Config file (~/.keyfold.yaml)
//  5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files before Viper env binding
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("KEYFOLD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Try to read config file if it exists
	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".keyfold")
		}
	}

	// Missing config file is fine; flags and env cover everything
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),

		ConfigFile: viper.ConfigFileUsed(),

		Input:        viper.GetString("input"),
		Output:       viper.GetString("output"),
		Intermediate: viper.GetString("intermediate"),
		GroupsFile:   viper.GetString("groups"),
		Delimiter:    viper.GetString("delimiter"),
		Preview:      viper.GetBool("preview"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if config.Delimiter == "" {
		config.Delimiter = ","
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags. This runs
// after cobra parses flags so flag values take precedence over config file
// and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// DelimiterRune returns the configured delimiter as a rune, defaulting to
// comma when unset or multi-character.
func (c *Config) DelimiterRune() rune {
	if c.Delimiter == "" {
		return ','
	}
	runes := []rune(c.Delimiter)
	if len(runes) != 1 {
		return ','
	}
	return runes[0]
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
