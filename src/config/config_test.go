package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
name: stock-lens
host: 0.0.0.0
port: 8080
`

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, ".TW", cfg.Resolver.PrimarySuffix)
	assert.Equal(t, ".TWO", cfg.Resolver.SecondarySuffix)
	assert.Equal(t, ".", cfg.Resolver.Delimiter)
	assert.Equal(t, "6mo", cfg.Provider.Period)
	assert.Equal(t, "1d", cfg.Provider.Interval)
	assert.Equal(t, "yahoo", cfg.Provider.Name)
	assert.Equal(t, 8, cfg.Windows.MaxPoints)
	assert.Equal(t, 8, cfg.Windows.MaxTableRows)
	assert.Equal(t, 12, cfg.Windows.MaxTableCols)
	assert.True(t, cfg.Windows.Transpose)
	assert.Equal(t, "none", cfg.Storage.DBType)
	assert.Equal(t, DefaultWatchlistCron, cfg.Watchlist.Cron)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"missing name":     "host: x\nport: 8080\n",
		"low port":         "name: a\nhost: x\nport: 80\n",
		"bad db type":      minimalYAML + "storage:\n  db_type: mysql\n",
		"sqlite no path":   minimalYAML + "storage:\n  db_type: sqlite\n",
		"same suffixes":    minimalYAML + "resolver:\n  primary_suffix: .TW\n  secondary_suffix: .TW\n",
		"suffix delimiter": minimalYAML + "resolver:\n  primary_suffix: TW\n",
		"bad log level":    minimalYAML + "log_level: loud\n",
		"negative window":  minimalYAML + "windows:\n  max_points: -1\n",
		"grpc same port":   minimalYAML + "grpc_port: 8080\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML + "watchlist:\n  symbols: [\"2330\", \"2317\", \"2603\"]\n"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.MConfig, loaded.MConfig)
}

func TestResolvePathPrefersEnv(t *testing.T) {
	t.Setenv(EnvConfigPath, "/etc/stock-lens.yaml")
	assert.Equal(t, "/etc/stock-lens.yaml", ResolvePath("config/default.yaml"))

	t.Setenv(EnvConfigPath, "")
	assert.Equal(t, "config/default.yaml", ResolvePath("config/default.yaml"))
}
