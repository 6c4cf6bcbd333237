package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	old := os.Args
	os.Args = append([]string{"cmd"}, args...)
	t.Cleanup(func() { os.Args = old })
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8000", c.Addr)
	assert.Equal(t, "/api", c.BasePath)
	assert.Equal(t, "secretKey", c.JWTSecret)
	assert.Equal(t, 24*time.Hour, c.TokenTTL)
	assert.Empty(t, c.VerificationCode)
	assert.Equal(t, 10*time.Minute, c.CodeTTL)
	assert.Equal(t, "admin@example.com", c.SeedAdminEmail)
	assert.Equal(t, 10, c.BcryptCost)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	t.Chdir(t.TempDir())
	withArgs(t)

	c := LoadConfig()
	require.NotNil(t, c)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, want, *c)
}

func TestLoadConfig_Layers(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("DEVSERVER_JWT_SECRET=from-env\nDEVSERVER_BCRYPT_COST=4\n"), 0o600))
	jsonPath := filepath.Join(dir, "dev.json")
	require.NoError(t, os.WriteFile(jsonPath,
		[]byte(`{"jwt_secret":"from-json","code_ttl":"1m","verification_code":"111111"}`), 0o600))
	t.Setenv(EnvVarSeedAdminEmail, "root@example.com")

	withArgs(t, "-config", jsonPath, "-code", "222222", "-t", "30", "-a", ":9999")

	c := LoadConfig()

	assert.Equal(t, "from-json", c.JWTSecret)
	assert.Equal(t, 4, c.BcryptCost)
	assert.Equal(t, "root@example.com", c.SeedAdminEmail)
	assert.Equal(t, time.Minute, c.CodeTTL)
	assert.Equal(t, "222222", c.VerificationCode)
	assert.Equal(t, 30*time.Minute, c.TokenTTL)
	assert.Equal(t, ":9999", c.Addr)
}

func TestLoadConfig_Panics(t *testing.T) {
	t.Run("bad code", func(t *testing.T) {
		t.Chdir(t.TempDir())
		withArgs(t, "-code", "12")
		assert.Panics(t, func() { LoadConfig() })
	})

	t.Run("bad flag value", func(t *testing.T) {
		t.Chdir(t.TempDir())
		withArgs(t, "-t", "soon")
		assert.Panics(t, func() { LoadConfig() })
	})

	t.Run("bad json", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		p := filepath.Join(dir, "c.json")
		require.NoError(t, os.WriteFile(p, []byte("{"), 0o600))
		withArgs(t, "-c", p)
		assert.Panics(t, func() { LoadConfig() })
	})

	t.Run("bad env duration", func(t *testing.T) {
		t.Chdir(t.TempDir())
		withArgs(t)
		t.Setenv(EnvVarTokenTTL, "forever")
		assert.Panics(t, func() { LoadConfig() })
	})
}
