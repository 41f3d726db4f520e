package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Empty(t, cfg.Monitor.Address)
	assert.Equal(t, time.Second, cfg.Monitor.Interval())
	assert.Equal(t, time.Duration(0), cfg.Monitor.Duration())
	assert.Equal(t, 10*time.Second, cfg.Monitor.ScanDuration())
	assert.Equal(t, -59, cfg.Monitor.TxPower)
	assert.Equal(t, 2.0, cfg.Monitor.PathLossExp)
	assert.False(t, cfg.Monitor.Connect)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
monitor:
  address: "A4:C1:38:00:00:01"
  intervalSeconds: 2.5
  durationSeconds: 30
  scanSeconds: 5
  connect: true
  txPower: -65
  pathLossExponent: 2.5
logging:
  logFormat: "json"
  logLevel: "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "A4:C1:38:00:00:01", cfg.Monitor.Address)
	assert.Equal(t, 2500*time.Millisecond, cfg.Monitor.Interval())
	assert.Equal(t, 30*time.Second, cfg.Monitor.Duration())
	assert.Equal(t, 5*time.Second, cfg.Monitor.ScanDuration())
	assert.True(t, cfg.Monitor.Connect)
	assert.Equal(t, -65, cfg.Monitor.TxPower)
	assert.Equal(t, 2.5, cfg.Monitor.PathLossExp)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/non/existent/config.yaml")
	assert.Error(t, err)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Setenv("BLEPROX_TX_POWER", "-72")
	t.Setenv("BLEPROX_INTERVAL_SECONDS", "0.5")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, -72, cfg.Monitor.TxPower)
	assert.Equal(t, 500*time.Millisecond, cfg.Monitor.Interval())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"valid address", func(c *Config) { c.Monitor.Address = "a4:c1:38:00:00:01" }, ""},
		{"address missing colons", func(c *Config) { c.Monitor.Address = "A4C13800000001" }, "invalid MAC address"},
		{"address wrong separator", func(c *Config) { c.Monitor.Address = "A4-C1-38-00-00-01" }, "invalid MAC address"},
		{"address non-hex", func(c *Config) { c.Monitor.Address = "ZZ:C1:38:00:00:01" }, "invalid MAC address"},
		{"address too short", func(c *Config) { c.Monitor.Address = "A4:C1:38:00:00" }, "invalid MAC address"},
		{"zero interval", func(c *Config) { c.Monitor.IntervalSeconds = 0 }, "interval must be positive"},
		{"negative duration", func(c *Config) { c.Monitor.DurationSeconds = -1 }, "must not be negative"},
		{"zero scan duration", func(c *Config) { c.Monitor.ScanSeconds = 0 }, "at least 1 second"},
		{"zero path loss", func(c *Config) { c.Monitor.PathLossExp = 0 }, "path loss exponent"},
		{"negative path loss", func(c *Config) { c.Monitor.PathLossExp = -2 }, "path loss exponent"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "log format"},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }, "log level"},
		{"uppercase level accepted", func(c *Config) { c.Logging.Level = "WARN" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestInitLogger(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		t.Run(format, func(t *testing.T) {
			cfg := Config{Logging: LoggingConfig{Format: format, Level: "debug"}}
			logger, err := cfg.InitLogger()
			require.NoError(t, err)
			require.NotNil(t, logger)
			_ = logger.Sync()
		})
	}
}
