package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	// envConfigFile overrides the config location when Load gets no path.
	envConfigFile     = "APP_CONFIG_FILE"
	defaultConfigFile = "config.yaml"
)

// Load reads engine configuration from the given YAML file, with APP_*
// environment variables taking precedence over file values. An empty path
// falls back to $APP_CONFIG_FILE, then to config.yaml in the working
// directory.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(envConfigFile)
	}
	if path == "" {
		path = defaultConfigFile
	}

	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	var config Config
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("engine config %s not readable: %w", path, err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("engine config %s: unmarshal: %w", path, err)
	}
	return &config, nil
}
