package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	setDefaults(v)

	var config Config
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 10)
	v.SetDefault("server.writeTimeout", 10)
	v.SetDefault("server.shutdownTimeout", 10)
	v.SetDefault("server.rateLimitPerMin", 120)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslMode", "disable")
	v.SetDefault("postgres.migrationsDir", "migrations")
	v.SetDefault("postgres.maxConns", 8)
	v.SetDefault("postgres.minConns", 1)
	v.SetDefault("postgres.maxConnLifetime", 1800)
	v.SetDefault("postgres.maxConnIdleTime", 300)
	v.SetDefault("postgres.healthCheckPeriod", 60)
}
