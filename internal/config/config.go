package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	APIBaseURL     string `mapstructure:"API_BASE_URL"`
	RequestTimeout int    `mapstructure:"REQUEST_TIMEOUT"`
	DatabasePath   string `mapstructure:"DATABASE_PATH"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	DefaultTopK    int    `mapstructure:"DEFAULT_TOP_K"`
}

func Load() (*Config, error) {
	viper.SetDefault("API_BASE_URL", "http://localhost:8000")
	viper.SetDefault("REQUEST_TIMEOUT", 30)
	viper.SetDefault("DATABASE_PATH", "data/docuchat.db")
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("DEFAULT_TOP_K", 5)

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
