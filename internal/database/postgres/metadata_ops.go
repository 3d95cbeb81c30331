package postgres

import (
	"context"

	"github.com/pgadapt/pgadapt/pkg/adapter"
	"github.com/pgadapt/pgadapt/pkg/dbcapabilities"
)

// MetadataOps implements adapter.MetadataOperator for PostgreSQL.
type MetadataOps struct {
	conn *Connection
}

// GetVersion returns the PostgreSQL version string.
func (m *MetadataOps) GetVersion(ctx context.Context) (string, error) {
	var version string
	err := m.conn.pool.QueryRow(ctx, "SELECT version()").Scan(&version)
	if err != nil {
		return "", adapter.WrapError(dbcapabilities.PostgreSQL, "get_version", err)
	}
	return version, nil
}

// GetDatabaseSize returns the size of the database in bytes.
func (m *MetadataOps) GetDatabaseSize(ctx context.Context) (int64, error) {
	var size int64
	err := m.conn.pool.QueryRow(ctx, "SELECT pg_database_size(current_database())").Scan(&size)
	if err != nil {
		return 0, adapter.WrapError(dbcapabilities.PostgreSQL, "get_database_size", err)
	}
	return size, nil
}

// GetTableCount returns the number of ordinary tables visible through the
// configured schema search path.
func (m *MetadataOps) GetTableCount(ctx context.Context) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE c.relkind = 'r'
		AND n.nspname = ANY($1)
	`

	var count int
	err := m.conn.pool.QueryRow(ctx, query, m.conn.config.SearchPathSchemas()).Scan(&count)
	if err != nil {
		return 0, adapter.WrapError(dbcapabilities.PostgreSQL, "get_table_count", err)
	}
	return count, nil
}

// ClientEncoding returns the session's client encoding.
func (m *MetadataOps) ClientEncoding(ctx context.Context) (string, error) {
	var encoding string
	err := m.conn.pool.QueryRow(ctx, "SHOW client_encoding").Scan(&encoding)
	if err != nil {
		return "", adapter.WrapError(dbcapabilities.PostgreSQL, "client_encoding", err)
	}
	return encoding, nil
}
