package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionConfigValidate(t *testing.T) {
	t.Run("missing database name is a configuration error", func(t *testing.T) {
		config := ConnectionConfig{
			ConnectionType: "postgres",
			Host:           "localhost",
		}

		err := config.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)

		var configErr *ConfigurationError
		require.ErrorAs(t, err, &configErr)
		assert.Equal(t, "databaseName", configErr.Field)
	})

	t.Run("database name satisfies validation", func(t *testing.T) {
		config := ConnectionConfig{
			ConnectionType: "postgres",
			DatabaseName:   "app",
		}
		assert.NoError(t, config.Validate())
	})
}

func TestSearchPathSchemas(t *testing.T) {
	t.Run("comma-separated list keeps order", func(t *testing.T) {
		config := ConnectionConfig{SchemaSearchPath: "app, audit ,public"}
		assert.Equal(t, []string{"app", "audit", "public"}, config.SearchPathSchemas())
	})

	t.Run("empty search path falls back to the engine default", func(t *testing.T) {
		config := ConnectionConfig{ConnectionType: "postgres"}
		assert.Equal(t, []string{"public"}, config.SearchPathSchemas())
	})

	t.Run("blank entries are dropped", func(t *testing.T) {
		config := ConnectionConfig{SchemaSearchPath: "app,,audit"}
		assert.Equal(t, []string{"app", "audit"}, config.SearchPathSchemas())
	})
}
