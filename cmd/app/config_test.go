package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.env")

	configData := []byte(`
PORT=8080
ENVIRONMENT=development
VERSION=1.0.0
STORAGE=postgres
MIGRATIONS_PATH=file://../../migrations
POSTGRES_HOST=localhost
POSTGRES_PORT=5433
POSTGRES_USER=testuser
POSTGRES_PASSWORD=testpassword
POSTGRES_DB=testdb
MAIL_HOST=smtp.example.com
MAIL_PORT=2525
MAIL_USER=testuser@example.com
MAIL_PASSWORD=testpassword
MAIL_SENDER=sender@example.com
RABBITMQ_HOST=rabbitmq.example.com
RABBITMQ_USER=testuser
RABBITMQ_PASSWORD=testpassword
RATE_LIMIT_ENABLED=false
RATE_LIMIT_RPS=10.5
RATE_LIMIT_BURST=20
`)
	require.NoError(t, os.WriteFile(path, configData, 0o600))

	config, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "1.0.0", config.Version)
	assert.Equal(t, storagePostgres, config.Storage)
	assert.Equal(t, "file://../../migrations", config.MigrationsPath)
	assert.Equal(t, "localhost", config.DB.Host)
	assert.Equal(t, "5433", config.DB.Port)
	assert.Equal(t, "testuser", config.DB.User)
	assert.Equal(t, "testpassword", config.DB.Password)
	assert.Equal(t, "testdb", config.DB.Name)
	assert.Equal(t, "smtp.example.com", config.Mail.Host)
	assert.Equal(t, 2525, config.Mail.Port)
	assert.Equal(t, "testuser@example.com", config.Mail.User)
	assert.Equal(t, "testpassword", config.Mail.Password)
	assert.Equal(t, "sender@example.com", config.Mail.Sender)
	assert.Equal(t, "rabbitmq.example.com", config.RabbitMQ.Host)
	assert.Equal(t, "5672", config.RabbitMQ.Port)
	assert.Equal(t, "testuser", config.RabbitMQ.User)
	assert.Equal(t, "testpassword", config.RabbitMQ.Password)
	assert.False(t, config.Limiter.Enabled)
	assert.Equal(t, 10.5, config.Limiter.RPS)
	assert.Equal(t, 20, config.Limiter.Burst)
}

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := loadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "4000", config.Port)
	assert.Equal(t, storageMemory, config.Storage)
	assert.True(t, config.Limiter.Enabled)
	assert.Equal(t, "", config.RabbitMQ.Host)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=8080\nSTORAGE=postgres\n"), 0o600))

	t.Setenv("PORT", "9090")

	config, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", config.Port)
	assert.Equal(t, storagePostgres, config.Storage)
}
