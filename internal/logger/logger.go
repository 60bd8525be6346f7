package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type LoggerConfig struct {
	Level          string                 `json:"level,omitempty" validate:"oneof=trace debug info warn error"`
	Format         string                 `json:"format,omitempty" validate:"oneof=json console"`
	TimeField      string                 `json:"timeField,omitempty"`
	TimeFormat     string                 `json:"timeFormat,omitempty" validate:"oneof=rfc3339 rfc3339nano unix unix_ms"`
	ServiceName    string                 `json:"serviceName,omitempty"`
	ServiceVersion string                 `json:"serviceVersion,omitempty"`
	Env            string                 `json:"env,omitempty" validate:"oneof=dev staging prod"`
	WithCaller     bool                   `json:"withCaller,omitempty"`
	Stacktrace     bool                   `json:"stacktrace,omitempty"`
	Fields         map[string]interface{} `json:"fields,omitempty"`
}

func New(logg *LoggerConfig) (logger zerolog.Logger, err error) {
	logg.setDefaults()

	v := validator.New()
	if err = v.Struct(logg); err != nil {
		return logger, fmt.Errorf("logger config validation error: %w", err)
	}

	zerolog.TimestampFieldName = logg.TimeField
	zerolog.TimeFieldFormat = logg.TimeFormat

	switch logg.Env {
	case "prod", "staging":
		// production-like environments: JSON logs only, stdout is king
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Str("service", logg.ServiceName).
			Str("version", logg.ServiceVersion).
			Str("env", logg.Env).
			Logger()

	case "dev":
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: logg.TimeFormat,
		}
		var writer io.Writer = consoleWriter
		if logg.Level == "debug" || logg.Level == "trace" {
			// development + debug: console for humans, file for full history
			logPath := "logs/debug.log"
			if err := os.MkdirAll(filepath.Dir(logPath), 0755); err == nil {
				if file, ferr := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666); ferr == nil {
					writer = zerolog.MultiLevelWriter(consoleWriter, file)
				}
			}
		}
		logger = zerolog.New(writer).
			With().
			Timestamp().
			Str("service", logg.ServiceName).
			Str("version", logg.ServiceVersion).
			Str("env", logg.Env).
			Logger()
	}

	if logg.WithCaller {
		logger = logger.With().Caller().Logger()
	}
	if logg.Stacktrace {
		logger = logger.With().Stack().Logger()
	}
	if len(logg.Fields) > 0 {
		logger = logger.With().Fields(logg.Fields).Logger()
	}

	level, err := zerolog.ParseLevel(logg.Level)
	if err != nil {
		return logger, err
	}
	zerolog.SetGlobalLevel(level)

	return logger, nil
}

func (c *LoggerConfig) setDefaults() {
	if c.Env == "" {
		c.Env = "prod"
	}

	// level defaults depend on environment
	if c.Level == "" {
		if c.Env == "dev" {
			c.Level = "debug"
		} else {
			c.Level = "info"
		}
	}

	if c.Format == "" {
		if c.Env == "dev" {
			c.Format = "console"
		} else {
			c.Format = "json"
		}
	}

	if c.TimeField == "" {
		c.TimeField = "ts"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = "rfc3339nano"
	}

	if !c.WithCaller && c.Env == "dev" {
		c.WithCaller = true
	}
	if !c.Stacktrace && c.Env != "dev" {
		c.Stacktrace = true
	}

	if c.ServiceName == "" {
		c.ServiceName = "stammtisch-tracker"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.1.0"
	}

	if c.Fields == nil {
		c.Fields = make(map[string]interface{})
	}
}
