package adapter

import (
	"strings"

	"github.com/pgadapt/pgadapt/pkg/dbcapabilities"
)

// ConnectionConfig contains the configuration for a database connection.
type ConnectionConfig struct {
	// Core identifiers
	DatabaseID string `json:"databaseId,omitempty"`

	// Connection metadata
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`

	// Database type, e.g., "postgres"
	ConnectionType string `json:"connectionType"`

	// Connection details
	Host         string `json:"host"`
	Port         int    `json:"port"`
	Username     string `json:"username,omitempty"`
	Password     string `json:"password,omitempty"`
	DatabaseName string `json:"databaseName"`

	// Session options
	// SchemaSearchPath is a comma-separated ordered list of schema names
	// restricting catalog introspection and unqualified name resolution.
	SchemaSearchPath string `json:"schemaSearchPath,omitempty"`
	ClientEncoding   string `json:"clientEncoding,omitempty"`
	// MinMessages is the minimum severity of server log messages sent to
	// the client (DEBUG .. PANIC).
	MinMessages string `json:"minMessages,omitempty"`

	// SSL/TLS configuration
	SSL         bool    `json:"ssl,omitempty"`
	SSLMode     string  `json:"sslMode,omitempty"` // verify-full, require, etc.
	SSLCert     *string `json:"sslCert,omitempty"`
	SSLKey      *string `json:"sslKey,omitempty"`
	SSLRootCert *string `json:"sslRootCert,omitempty"`
}

// Validate checks the configuration for required fields. The database name
// is the only hard requirement; everything else has an engine default.
func (c ConnectionConfig) Validate() error {
	if c.DatabaseName == "" {
		return NewConfigurationError(
			dbcapabilities.DatabaseType(c.ConnectionType),
			"databaseName",
			"no database specified",
		)
	}
	return nil
}

// SearchPathSchemas splits the comma-separated schema search path into its
// ordered schema names. An empty search path yields the engine default
// schema for the configured database type.
func (c ConnectionConfig) SearchPathSchemas() []string {
	if strings.TrimSpace(c.SchemaSearchPath) == "" {
		if cap, ok := dbcapabilities.Get(dbcapabilities.DatabaseType(c.ConnectionType)); ok && cap.DefaultSchema != "" {
			return []string{cap.DefaultSchema}
		}
		return nil
	}

	parts := strings.Split(c.SchemaSearchPath, ",")
	schemas := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			schemas = append(schemas, s)
		}
	}
	return schemas
}
