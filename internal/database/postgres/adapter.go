package postgres

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgadapt/pgadapt/pkg/adapter"
	"github.com/pgadapt/pgadapt/pkg/dbcapabilities"
	"github.com/pgadapt/pgadapt/pkg/logger"
)

// Adapter implements the adapter.DatabaseAdapter interface for PostgreSQL.
type Adapter struct{}

// NewAdapter creates a new PostgreSQL adapter.
func NewAdapter() adapter.DatabaseAdapter {
	return &Adapter{}
}

// Type returns the database type identifier.
func (a *Adapter) Type() dbcapabilities.DatabaseType {
	return dbcapabilities.PostgreSQL
}

// Capabilities returns the capabilities metadata for PostgreSQL.
func (a *Adapter) Capabilities() dbcapabilities.Capability {
	return dbcapabilities.MustGet(dbcapabilities.PostgreSQL)
}

// Connect establishes a connection to a PostgreSQL database.
func (a *Adapter) Connect(ctx context.Context, config adapter.ConnectionConfig) (adapter.Connection, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	poolConfig, err := pgxpool.ParseConfig(buildConnString(config))
	if err != nil {
		return nil, adapter.NewConnectionError(
			dbcapabilities.PostgreSQL,
			config.Host,
			config.Port,
			fmt.Errorf("error parsing connection string: %w", err),
		)
	}

	// Session options ride in the startup packet so every pooled
	// connection gets them.
	for name, value := range sessionRuntimeParams(config) {
		poolConfig.ConnConfig.RuntimeParams[name] = value
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, adapter.NewConnectionError(
			dbcapabilities.PostgreSQL,
			config.Host,
			config.Port,
			fmt.Errorf("error connecting to database: %w", err),
		)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, adapter.NewConnectionError(
			dbcapabilities.PostgreSQL,
			config.Host,
			config.Port,
			fmt.Errorf("error pinging database: %w", err),
		)
	}

	id := config.DatabaseID
	if id == "" {
		id = uuid.NewString()
	}

	log := logger.New("postgres[" + config.DatabaseName + "]")
	if config.MinMessages != "" {
		log.SetMinLevel(logger.ParseLevel(config.MinMessages))
	}

	conn := &Connection{
		id:        id,
		pool:      pool,
		config:    config,
		adapter:   a,
		logger:    log,
		connected: 1,
	}

	log.Infof("connected to %s:%d/%s", config.Host, config.Port, config.DatabaseName)

	return conn, nil
}

// Connection implements adapter.Connection for PostgreSQL.
type Connection struct {
	id        string
	pool      *pgxpool.Pool
	config    adapter.ConnectionConfig
	adapter   *Adapter
	logger    *logger.Logger
	connected int32

	// The bytea codec depends on the server's wire format and is resolved
	// at most once per connection. codecOnce makes the resolution safe
	// under concurrent first use.
	codecOnce  sync.Once
	byteaCodec byteaCodec
}

// ID returns the connection identifier.
func (c *Connection) ID() string {
	return c.id
}

// Type returns the database type.
func (c *Connection) Type() dbcapabilities.DatabaseType {
	return dbcapabilities.PostgreSQL
}

// IsConnected returns whether the connection is active.
func (c *Connection) IsConnected() bool {
	return atomic.LoadInt32(&c.connected) == 1
}

// Ping checks if the connection is alive.
func (c *Connection) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

// Close closes the connection.
func (c *Connection) Close() error {
	atomic.StoreInt32(&c.connected, 0)
	c.pool.Close()
	return nil
}

// SchemaOperations returns the schema operator for PostgreSQL.
func (c *Connection) SchemaOperations() adapter.SchemaOperator {
	return &SchemaOps{conn: c}
}

// DataOperations returns the data operator for PostgreSQL.
func (c *Connection) DataOperations() adapter.DataOperator {
	return &DataOps{conn: c}
}

// MetadataOperations returns the metadata operator for PostgreSQL.
func (c *Connection) MetadataOperations() adapter.MetadataOperator {
	return &MetadataOps{conn: c}
}

// Raw returns the underlying pgxpool.Pool.
func (c *Connection) Raw() interface{} {
	return c.pool
}

// Config returns the connection configuration.
func (c *Connection) Config() adapter.ConnectionConfig {
	return c.config
}

// Adapter returns the database adapter.
func (c *Connection) Adapter() adapter.DatabaseAdapter {
	return c.adapter
}

// codec returns the bytea codec matching the server's wire format,
// resolving it on first use. Resolution queries the server version once;
// if that query fails the hex codec is assumed, since every supported
// server version emits hex output.
func (c *Connection) codec(ctx context.Context) byteaCodec {
	c.codecOnce.Do(func() {
		versionNum, err := c.serverVersionNum(ctx)
		if err != nil {
			c.logger.Warnf("could not determine server version, assuming hex bytea output: %v", err)
			versionNum = dbcapabilities.MustGet(dbcapabilities.PostgreSQL).HexByteaVersionFloor
		}
		c.byteaCodec = resolveByteaCodec(versionNum)
	})
	return c.byteaCodec
}

// StatementBuilder returns a statement builder bound to this connection's
// bytea codec.
func (c *Connection) StatementBuilder(ctx context.Context) *StatementBuilder {
	return NewStatementBuilder(c.codec(ctx))
}
