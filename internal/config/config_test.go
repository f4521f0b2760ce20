package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{"PORT", "GIN_MODE", "LOG_LEVEL", "LOGO_PATH", "QR_ENGINE", "FONT_REGULAR", "FONT_BOLD", "STATIC_DIR"}
	for _, k := range keys {
		for _, name := range []string{k, EnvPrefix + "_" + k} {
			if v, ok := os.LookupEnv(name); ok {
				require.NoError(t, os.Unsetenv(name))
				t.Cleanup(func() { os.Setenv(name, v) })
			}
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "upiqr.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9000\nqr_engine: skip2\nlog_level: debug\n"), 0o644))

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "skip2", cfg.QREngine)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "web/static/upi.svg", cfg.LogoPath, "unset keys keep defaults")
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "upiqr.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9000\n"), 0o644))

	t.Setenv("UPIQR_PORT", "9100")
	t.Setenv("UPIQR_LOGO_PATH", "/srv/logo.png")

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "/srv/logo.png", cfg.LogoPath)
}

func TestLoadBarePort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3000")

	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("UPIQR_QR_ENGINE=skip2\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("UPIQR_QR_ENGINE") })

	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "skip2", cfg.QREngine)
}

func TestLoadInvalid(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("port: [nope"), 0o644))
	_, err := Load(bad, "")
	assert.Error(t, err)

	t.Setenv("UPIQR_PORT", "not-a-number")
	_, err = Load("", "")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())

	cfg.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.LogLevel = "chatty"
	assert.Error(t, cfg.Validate())

	for _, mode := range []string{"debug", "release", "test"} {
		cfg = Defaults()
		cfg.GinMode = mode
		assert.NoError(t, cfg.Validate(), mode)
	}

	cfg = Defaults()
	cfg.GinMode = "prod"
	assert.ErrorContains(t, cfg.Validate(), "gin_mode")
}

func TestLoadRejectsUnknownGinMode(t *testing.T) {
	clearEnv(t)
	t.Setenv("UPIQR_GIN_MODE", "prod")

	_, err := Load("", "")
	assert.ErrorContains(t, err, `invalid gin_mode "prod"`)
}

func TestNewLogger(t *testing.T) {
	cfg := Defaults()
	cfg.LogLevel = "debug"
	assert.Equal(t, logrus.DebugLevel, cfg.NewLogger().GetLevel())
}
