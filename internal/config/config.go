package config

import (
	"fmt"
	"net/url"

	"github.com/twentyab/stammtisch-tracker/internal/logger"
)

type Config struct {
	Server   ServerConfig        `mapstructure:"server"`
	Logger   logger.LoggerConfig `mapstructure:"logger"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ReadTimeout     int `mapstructure:"readTimeout"`     // seconds
	WriteTimeout    int `mapstructure:"writeTimeout"`    // seconds
	ShutdownTimeout int `mapstructure:"shutdownTimeout"` // seconds
	RateLimitPerMin int `mapstructure:"rateLimitPerMin"`
}

type PostgresConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	DBName            string `mapstructure:"dbName"`
	SSLMode           string `mapstructure:"sslMode"`
	MigrationsDir     string `mapstructure:"migrationsDir"`
	MaxConns          int32  `mapstructure:"maxConns"`
	MinConns          int32  `mapstructure:"minConns"`
	MaxConnLifetime   int    `mapstructure:"maxConnLifetime"`   // seconds
	MaxConnIdleTime   int    `mapstructure:"maxConnIdleTime"`   // seconds
	HealthCheckPeriod int    `mapstructure:"healthCheckPeriod"` // seconds
}

// DSN assembles the postgres URL, escaping credentials via url.URL.
func (p PostgresConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:   p.DBName,
	}
	if p.User != "" || p.Password != "" {
		u.User = url.UserPassword(p.User, p.Password)
	}
	q := u.Query()
	if p.SSLMode != "" {
		q.Set("sslmode", p.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
