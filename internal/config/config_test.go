package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("parses a full profile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
host: db.internal
port: 5433
username: app
password: secret
database: orders
schema_search_path: app,public
encoding: UTF8
min_messages: warning
sslmode: require
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		profile, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "db.internal", profile.Host)
		assert.Equal(t, 5433, profile.Port)
		assert.Equal(t, "orders", profile.Database)
		assert.Equal(t, "app,public", profile.SchemaSearchPath)
	})

	t.Run("host defaults to localhost", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("database: app\n"), 0o600))

		profile, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "localhost", profile.Host)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestConnectionConfig(t *testing.T) {
	profile := &Profile{
		Host:     "localhost",
		Database: "app",
		SSLMode:  "require",
	}

	cfg := profile.ConnectionConfig()
	assert.Equal(t, "postgres", cfg.ConnectionType)
	assert.Equal(t, "app", cfg.DatabaseName)
	assert.True(t, cfg.SSL)
	assert.Equal(t, "require", cfg.SSLMode)

	profile.SSLMode = "disable"
	assert.False(t, profile.ConnectionConfig().SSL)
}
