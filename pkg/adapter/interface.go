// Package adapter provides the unified interface for database adapters.
// This package defines the contracts that engine-specific implementations
// must follow.
package adapter

import (
	"context"

	"github.com/pgadapt/pgadapt/pkg/dbcapabilities"
	"github.com/pgadapt/pgadapt/pkg/schema"
)

// DatabaseAdapter represents a database technology adapter.
type DatabaseAdapter interface {
	// Type returns the canonical database type identifier
	Type() dbcapabilities.DatabaseType

	// Capabilities returns the capability metadata for this database type
	Capabilities() dbcapabilities.Capability

	// Connect establishes a connection to a specific database
	Connect(ctx context.Context, config ConnectionConfig) (Connection, error)
}

// Connection represents an active connection to a specific database.
// A connection executes one statement at a time; callers needing
// concurrency hold independent connections.
type Connection interface {
	// Identity and status
	ID() string
	Type() dbcapabilities.DatabaseType
	IsConnected() bool

	// Lifecycle management
	Ping(ctx context.Context) error
	Close() error

	// Operation interfaces
	SchemaOperations() SchemaOperator
	DataOperations() DataOperator
	MetadataOperations() MetadataOperator

	// Raw returns the underlying database-specific connection object.
	// Type assertion is required when using Raw().
	Raw() interface{}

	// Configuration
	Config() ConnectionConfig
	Adapter() DatabaseAdapter
}

// SchemaOperator handles catalog introspection and schema mutation.
type SchemaOperator interface {
	// ListTables returns the names of the tables visible through the
	// configured schema search path, ordered by name.
	ListTables(ctx context.Context) ([]string, error)

	// ListColumns returns the column definitions of a table in physical
	// column order, with engine types normalized to the portable
	// vocabulary and defaults parsed where possible.
	ListColumns(ctx context.Context, table string) ([]schema.ColumnDefinition, error)

	// ListIndexes returns the table's secondary indexes ordered by index
	// name. The primary-key index is excluded.
	ListIndexes(ctx context.Context, table string) ([]schema.IndexDefinition, error)

	// DiscoverSchema retrieves all visible tables with their columns and
	// indexes.
	DiscoverSchema(ctx context.Context) ([]schema.TableDefinition, error)

	// Schema mutation. Each call renders dialect SQL and executes it;
	// engine rejections propagate verbatim.
	AddColumn(ctx context.Context, table, column string, columnType schema.PortableType, opts AddColumnOptions) error
	ChangeColumnType(ctx context.Context, table, column string, columnType schema.PortableType) error
	ChangeColumnDefault(ctx context.Context, table, column string, defaultValue any) error
	RenameColumn(ctx context.Context, table, oldName, newName string) error
	RemoveIndex(ctx context.Context, table string, opts RemoveIndexOptions) error
}

// AddColumnOptions carries the optional clauses of an add-column
// operation. Default and NotNull are independent; when present they are
// applied after the column itself is added, in that order.
type AddColumnOptions struct {
	Default any
	// HasDefault distinguishes "no default" from an explicit NULL default.
	HasDefault bool
	NotNull    bool
}

// RemoveIndexOptions names the index to drop, either explicitly or by the
// <table>_<column>_index convention when only Column is given.
type RemoveIndexOptions struct {
	Name   string
	Column string
}

// DataOperator handles data access and statement execution.
type DataOperator interface {
	// Fetch retrieves up to limit rows from a table (all rows when
	// limit <= 0).
	Fetch(ctx context.Context, table string, limit int) ([]schema.DecodedRow, error)

	// Insert writes rows using bound parameters and returns the affected
	// row count.
	Insert(ctx context.Context, table string, data []map[string]interface{}) (int64, error)

	// Exec runs a statement and returns the affected row count.
	// Transaction control statements (BEGIN, COMMIT, ROLLBACK) pass
	// through here unchanged.
	Exec(ctx context.Context, sql string) (int64, error)

	// Query runs a statement and returns decoded rows. Binary-typed cells
	// are routed through the adapter's value codec.
	Query(ctx context.Context, sql string) ([]schema.DecodedRow, error)

	// LastInsertID returns the most recent value generated for the
	// table/column sequence (column defaults to the engine's id
	// convention when empty).
	LastInsertID(ctx context.Context, table, column string) (int64, error)
}

// MetadataOperator handles metadata collection and server introspection.
type MetadataOperator interface {
	GetVersion(ctx context.Context) (string, error)
	GetDatabaseSize(ctx context.Context) (int64, error)
	GetTableCount(ctx context.Context) (int, error)
	ClientEncoding(ctx context.Context) (string, error)
}
