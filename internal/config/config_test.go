package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "ai:\n  apiKey: sk-test\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "file", cfg.History.Driver)
	assert.Equal(t, "grmc-history.json", cfg.History.Path)
	assert.Equal(t, "sk-test", cfg.AI.APIKey)
}

func TestLoadFull(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
server:
  port: 9090
history:
  driver: postgres
database:
  host: db.internal
  port: 5432
  user: grmc
  password: secret
  name: grmc
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.History.Driver)
	assert.Contains(t, cfg.PostgresDSN(), "host=db.internal")
	assert.Contains(t, cfg.PostgresDSN(), "sslmode=disable")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestMySQLDSN(t *testing.T) {
	var cfg Config
	cfg.Database.Host = "localhost"
	cfg.Database.Port = 3306
	cfg.Database.User = "grmc"
	cfg.Database.Password = "pw"
	cfg.Database.Name = "grmc"

	assert.Equal(t, "grmc:pw@tcp(localhost:3306)/grmc?parseTime=true&charset=utf8mb4&loc=UTC", cfg.MySQLDSN())
}
