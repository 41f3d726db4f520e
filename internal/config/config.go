package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is the application configuration, loadable from an optional YAML
// file with environment variable overrides. CLI flags override both.
type Config struct {
	Monitor MonitorConfig `yaml:"monitor"`
	Logging LoggingConfig `yaml:"logging"`
}

// MonitorConfig covers target selection, sampling cadence and calibration.
// Durations are plain seconds, as the tooling this replaces expected them.
type MonitorConfig struct {
	Address         string  `yaml:"address" env:"BLEPROX_ADDRESS"`
	IntervalSeconds float64 `yaml:"intervalSeconds" env:"BLEPROX_INTERVAL_SECONDS" env-default:"1"`
	DurationSeconds int     `yaml:"durationSeconds" env:"BLEPROX_DURATION_SECONDS" env-default:"0"`
	ScanSeconds     int     `yaml:"scanSeconds" env:"BLEPROX_SCAN_SECONDS" env-default:"10"`
	Connect         bool    `yaml:"connect" env:"BLEPROX_CONNECT" env-default:"false"`
	TxPower         int     `yaml:"txPower" env:"BLEPROX_TX_POWER" env-default:"-59"`
	PathLossExp     float64 `yaml:"pathLossExponent" env:"BLEPROX_PATH_LOSS_EXPONENT" env-default:"2.0"`
}

// Interval returns the sampling interval as a duration.
func (m MonitorConfig) Interval() time.Duration {
	return time.Duration(m.IntervalSeconds * float64(time.Second))
}

// Duration returns the total monitoring budget; zero means unbounded.
func (m MonitorConfig) Duration() time.Duration {
	return time.Duration(m.DurationSeconds) * time.Second
}

// ScanDuration returns the discovery scan window.
func (m MonitorConfig) ScanDuration() time.Duration {
	return time.Duration(m.ScanSeconds) * time.Second
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Format string `yaml:"logFormat" env:"BLEPROX_LOG_FORMAT" env-default:"console"`
	Level  string `yaml:"logLevel" env:"BLEPROX_LOG_LEVEL" env-default:"info"`
}

var macAddressRegex = regexp.MustCompile(`^([0-9A-Fa-f]{2}:){5}[0-9A-Fa-f]{2}$`)

// Load reads configuration from the given YAML file, or from the
// environment alone when path is empty.
func Load(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from environment: %w", err)
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration. The address may be empty; the operator
// picks one from discovery in that case.
func (c *Config) Validate() error {
	if c.Monitor.Address != "" && !macAddressRegex.MatchString(c.Monitor.Address) {
		return fmt.Errorf("invalid MAC address format: %s (expected format: XX:XX:XX:XX:XX:XX)", c.Monitor.Address)
	}

	if c.Monitor.IntervalSeconds <= 0 {
		return fmt.Errorf("sampling interval must be positive, got %v", c.Monitor.IntervalSeconds)
	}
	if c.Monitor.DurationSeconds < 0 {
		return fmt.Errorf("monitoring duration must not be negative, got %d", c.Monitor.DurationSeconds)
	}
	if c.Monitor.ScanSeconds < 1 {
		return fmt.Errorf("scan duration must be at least 1 second, got %d", c.Monitor.ScanSeconds)
	}
	if c.Monitor.PathLossExp <= 0 {
		return fmt.Errorf("path loss exponent must be positive, got %v", c.Monitor.PathLossExp)
	}

	c.Logging.Format = strings.ToLower(c.Logging.Format)
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("log format must be 'console' or 'json', got: %s", c.Logging.Format)
	}

	c.Logging.Level = strings.ToLower(c.Logging.Level)
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("log level must be one of: debug, info, warn, error, got: %s", c.Logging.Level)
	}

	return nil
}

// InitLogger builds a zap logger from the logging configuration. Logs go to
// stderr so reading lines on stdout stay machine-consumable.
func (c *Config) InitLogger() (*zap.Logger, error) {
	var level zapcore.Level
	switch c.Logging.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "ts"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if c.Logging.Format == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zcfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         c.Logging.Format,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
