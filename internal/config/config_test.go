package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"BANK_DATA_FILE", "BANK_ADMIN_PASSWORD_HASH", "BANK_ADMIN_PASSWORD", "BANK_LOG_LEVEL", "BANK_BCRYPT_COST"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("BANK_BCRYPT_COST", "4") // 加速測試

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultDataFile, cfg.DataFile)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, bcrypt.MinCost, cfg.BcryptCost)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(DefaultAdminPassword)))
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Setenv("BANK_DATA_FILE", "/tmp/ledger.json")
	t.Setenv("BANK_LOG_LEVEL", "debug")
	t.Setenv("BANK_BCRYPT_COST", "5")
	t.Setenv("BANK_ADMIN_PASSWORD_HASH", string(hash))
	t.Setenv("BANK_ADMIN_PASSWORD", "ignored")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/ledger.json", cfg.DataFile)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 5, cfg.BcryptCost)
	assert.Equal(t, string(hash), cfg.AdminPasswordHash)
}

func TestLoadPlainAdminPassword(t *testing.T) {
	clearEnv(t)
	t.Setenv("BANK_BCRYPT_COST", "4")
	t.Setenv("BANK_ADMIN_PASSWORD", "letmein")

	cfg, err := Load()
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte("letmein")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(DefaultAdminPassword)))
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string][2]string{
		"log level":   {"BANK_LOG_LEVEL", "loud"},
		"cost nan":    {"BANK_BCRYPT_COST", "high"},
		"cost range":  {"BANK_BCRYPT_COST", "99"},
		"hash format": {"BANK_ADMIN_PASSWORD_HASH", "plaintext"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("BANK_BCRYPT_COST", "4")
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
