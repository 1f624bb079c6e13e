package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/currentmenu/pkg/menu"
	"github.com/mchmarny/currentmenu/pkg/render"
	"github.com/mchmarny/currentmenu/pkg/server"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("port", server.DefaultPort, "")
	fs.String("file", "", "")
	fs.String("redis-url", "", "")
	fs.String("log-level", "", "")
	require.NoError(t, fs.Parse(args))

	return fs
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	path := writeConfig(t, "store:\n  file: site.yaml\n")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, server.DefaultPort, cfg.Server.Port)
	assert.Equal(t, server.DefaultShutdownTimeout, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "site.yaml", cfg.Store.File)
	assert.Equal(t, "currentmenu", cfg.Store.RedisPrefix)
	assert.Equal(t, render.Unlimited, cfg.Render.Depth)
	assert.Equal(t, "wp-block-current-menu", cfg.Render.Class)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Nil(t, cfg.MenuFilter())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
  shutdown_timeout: 2s
store:
  redis_url: redis://localhost:6379/0
render:
  depth: -1
  class: local-nav
menus:
  hidden: [3]
log:
  level: debug
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Store.RedisURL)
	assert.Equal(t, render.Flat, cfg.Render.Depth)
	assert.Equal(t, "local-nav", cfg.Render.Class)
	assert.Equal(t, "debug", cfg.Log.Level)

	filter := cfg.MenuFilter()
	require.NotNil(t, filter)
	menus := []menu.Menu{{ID: 2}, {ID: 3}, {ID: 4}}
	assert.Equal(t, []menu.Menu{{ID: 2}, {ID: 4}}, filter(menus))
	assert.Len(t, menus, 3, "input is not modified")
}

func TestLoadPrecedence(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\nstore:\n  file: site.yaml\n")

	t.Setenv("CURRENTMENU_SERVER_PORT", "9000")
	cfg, err := Load(path, testFlags(t))
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port, "env overrides file")

	cfg, err = Load(path, testFlags(t, "--port", "9100", "--log-level", "warn"))
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port, "flag overrides env")
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadLogLevelEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := Load(writeConfig(t, "store:\n  file: site.yaml\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"no store":   "server:\n  port: 80\n",
		"two stores": "store:\n  file: a.yaml\n  redis_url: redis://x\n",
		"bad port":   "server:\n  port: 70000\nstore:\n  file: a.yaml\n",
		"bad depth":  "render:\n  depth: -3\nstore:\n  file: a.yaml\n",
		"bad yaml":   "store: [",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body), nil)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}
