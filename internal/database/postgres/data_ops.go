package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/pgadapt/pgadapt/pkg/adapter"
	"github.com/pgadapt/pgadapt/pkg/dbcapabilities"
	"github.com/pgadapt/pgadapt/pkg/schema"
)

// DataOps implements adapter.DataOperator for PostgreSQL.
type DataOps struct {
	conn *Connection
}

// Fetch retrieves rows from a table, decoded through the result decoder.
// All rows are returned when limit <= 0.
func (d *DataOps) Fetch(ctx context.Context, table string, limit int) ([]schema.DecodedRow, error) {
	if table == "" {
		return nil, adapter.WrapError(dbcapabilities.PostgreSQL, "fetch",
			fmt.Errorf("table name cannot be empty"))
	}

	query := fmt.Sprintf("SELECT * FROM %s", pq.QuoteIdentifier(table))
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	return d.Query(ctx, query)
}

// Insert writes rows inside one transaction using bound parameters and
// returns the total affected row count.
func (d *DataOps) Insert(ctx context.Context, table string, data []map[string]interface{}) (int64, error) {
	if len(data) == 0 {
		return 0, nil
	}

	tx, err := d.conn.pool.Begin(ctx)
	if err != nil {
		return 0, adapter.WrapError(dbcapabilities.PostgreSQL, "insert", err)
	}
	defer tx.Rollback(ctx)

	// Get columns from the first row
	columns := make([]string, 0, len(data[0]))
	for col := range data[0] {
		columns = append(columns, col)
	}

	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = pq.QuoteIdentifier(col)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		pq.QuoteIdentifier(table),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	)

	var totalRowsAffected int64
	for _, row := range data {
		values := make([]interface{}, len(columns))
		for i, col := range columns {
			values[i] = row[col]
		}

		result, err := tx.Exec(ctx, query, values...)
		if err != nil {
			return 0, adapter.WrapError(dbcapabilities.PostgreSQL, "insert", err)
		}
		totalRowsAffected += result.RowsAffected()
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, adapter.WrapError(dbcapabilities.PostgreSQL, "insert", err)
	}

	return totalRowsAffected, nil
}

// Exec runs a statement and returns the affected row count. Engine
// rejections propagate verbatim as the wrapped cause.
func (d *DataOps) Exec(ctx context.Context, sql string) (int64, error) {
	tag, err := d.conn.pool.Exec(ctx, sql)
	if err != nil {
		return 0, adapter.WrapError(dbcapabilities.PostgreSQL, "exec", err)
	}
	return tag.RowsAffected(), nil
}

// Query runs a statement and returns decoded rows. Binary cells are
// routed through the connection's bytea codec; decode format violations
// surface as DecodeError.
func (d *DataOps) Query(ctx context.Context, sql string) ([]schema.DecodedRow, error) {
	rs, err := d.conn.queryRaw(ctx, sql)
	if err != nil {
		return nil, adapter.WrapError(dbcapabilities.PostgreSQL, "query", err)
	}

	rows, err := decodeResult(rs, d.conn.codec(ctx))
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// LastInsertID returns the most recent value generated by the sequence
// backing the table's column, following the <table>_<column>_seq naming
// convention. The column defaults to id.
func (d *DataOps) LastInsertID(ctx context.Context, table, column string) (int64, error) {
	if column == "" {
		column = "id"
	}
	sequence := fmt.Sprintf("%s_%s_seq", table, column)

	var id int64
	err := d.conn.pool.QueryRow(ctx, "SELECT currval($1::regclass)", sequence).Scan(&id)
	if err != nil {
		return 0, adapter.WrapError(dbcapabilities.PostgreSQL, "last_insert_id", err)
	}
	return id, nil
}
