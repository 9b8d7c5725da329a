package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "jwt_secret: sekrit\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, Duration(30*24*time.Hour), cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.True(t, cfg.FirstUserIsAdmin)
}

func TestLoadTokenTTLString(t *testing.T) {
	path := writeConfig(t, "jwt_secret: sekrit\ntoken_ttl: 12h\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Duration(12*time.Hour), cfg.TokenTTL)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	path := writeConfig(t, "port: 8080\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "jwt_secret: from-file\ndatabase:\n  password: filepass\n")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DB_PASSWORD", "envpass")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, "envpass", cfg.Database.Password)
}

func TestLoadMissingFileUsesEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-only")

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	require.NoError(t, err)
	assert.Equal(t, "env-only", cfg.JWTSecret)
}

func TestDSN(t *testing.T) {
	cfg := &AppConfig{Database: DatabaseConfig{
		Host: "db.internal", Port: 3307, User: "app", Password: "pw", Name: "blog",
	}}
	assert.Equal(t,
		"app:pw@tcp(db.internal:3307)/blog?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DSN())
}

func TestLoadProductionEnv(t *testing.T) {
	path := writeConfig(t, "jwt_secret: sekrit\nenv: production\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.IsDev())
}
