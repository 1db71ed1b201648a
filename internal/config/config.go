package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/buildconf-labs/buildconf/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyLogLevel      = "log.level"
	KeyLogFormat     = "log.format"
	KeyRepository    = "repository"
	KeyCacheTTL      = "cache.ttl"
	KeyTraceExporter = "trace.exporter"
	KeyTraceEndpoint = "trace.endpoint"
)

// Settings is a typed snapshot of the loaded configuration.
type Settings struct {
	LogLevel       string
	LogFormat      string
	RepositoryPath string
	CacheTTL       time.Duration
	TraceExporter  string
	TraceEndpoint  string
}

// Dir returns the path to the config directory (~/.buildconf/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.buildconf/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyLogFormat, "text")
	viper.SetDefault(KeyRepository, filepath.Join(Dir(), "repository"))
	viper.SetDefault(KeyCacheTTL, "10m")
	viper.SetDefault(KeyTraceExporter, "none")
	viper.SetDefault(KeyTraceEndpoint, "localhost:4317")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Current returns the loaded settings. An unparsable cache.ttl is an error.
func Current() (Settings, error) {
	ttl, err := time.ParseDuration(viper.GetString(KeyCacheTTL))
	if err != nil {
		return Settings{}, fmt.Errorf("reading %s: %w", KeyCacheTTL, err)
	}
	return Settings{
		LogLevel:       viper.GetString(KeyLogLevel),
		LogFormat:      viper.GetString(KeyLogFormat),
		RepositoryPath: viper.GetString(KeyRepository),
		CacheTTL:       ttl,
		TraceExporter:  viper.GetString(KeyTraceExporter),
		TraceEndpoint:  viper.GetString(KeyTraceEndpoint),
	}, nil
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
