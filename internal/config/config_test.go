package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	for _, k := range []string{"GROQ_API_KEY", "LLM_API_KEY", "GROQ_MODEL", "LLM_MODEL", "LLM_BASE_URL", "JWT_SECRET", "DB_PASSWORD", "DB_HOST", "PORT"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, DefaultLLMBaseURL, cfg.LLM.BaseURL)
	assert.Equal(t, DefaultLLMModel, cfg.LLM.Model)
	assert.InDelta(t, 0.3, cfg.LLM.Temperature, 0.0001)
	assert.Equal(t, 1500, cfg.LLM.MaxTokens)
	assert.EqualValues(t, 20*1024*1024, cfg.Upload.MaxBytes)
	assert.Equal(t, "./uploads", cfg.Upload.Dir)
	assert.True(t, cfg.RetainUploads())
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Empty(t, cfg.LLM.APIKey)
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, `
server:
  port: 8080
database:
  driver: postgres
  user: cv
  password: from-file
  name: cvdb
auth:
  jwtSecret: file-secret
  tokenTTL: 2h
llm:
  apiKey: file-key
  model: llama-3.3-70b-versatile
upload:
  retain: false
`)
	t.Setenv("GROQ_API_KEY", "env-key")
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("PORT", "9000")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "env-key", cfg.LLM.APIKey)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.Model)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.RetainUploads())
	assert.Equal(t, "host=localhost port=5432 user=cv password=from-env dbname=cvdb sslmode=disable", cfg.DSN())
}

func TestLLMKeyPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("GROQ_API_KEY", "groq")
	t.Setenv("LLM_API_KEY", "generic")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "generic", cfg.LLM.APIKey)
}

func TestLoadRejectsBadDriver(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, "database:\n  driver: sqlite\nauth:\n  jwtSecret: x\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeYAML(t, "server:\n  port: 1\n"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeYAML(t, "server: [unterminated"))
	assert.Error(t, err)
}

func TestMySQLDSN(t *testing.T) {
	var cfg Config
	cfg.Database.User = "root"
	cfg.Database.Password = "pw"
	cfg.Database.Host = "db"
	cfg.Database.Port = 3306
	cfg.Database.Name = "cv_processor"
	assert.Equal(t, "root:pw@tcp(db:3306)/cv_processor?parseTime=true&charset=utf8mb4&loc=UTC&clientFoundRows=true", cfg.MySQLDSN())
}
