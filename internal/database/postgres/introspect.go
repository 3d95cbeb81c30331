package postgres

import (
	"context"
	"database/sql"
	"sort"

	"github.com/pgadapt/pgadapt/pkg/adapter"
	"github.com/pgadapt/pgadapt/pkg/dbcapabilities"
	"github.com/pgadapt/pgadapt/pkg/schema"
)

// SchemaOps implements adapter.SchemaOperator for PostgreSQL.
type SchemaOps struct {
	conn *Connection
}

// ListTables returns the names of the ordinary tables visible through the
// configured schema search path, ordered by name.
func (s *SchemaOps) ListTables(ctx context.Context) ([]string, error) {
	query := `
		SELECT c.relname
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE c.relkind = 'r'
		AND n.nspname = ANY($1)
		ORDER BY c.relname
	`

	rows, err := s.conn.pool.Query(ctx, query, s.conn.config.SearchPathSchemas())
	if err != nil {
		return nil, adapter.WrapError(dbcapabilities.PostgreSQL, "list_tables", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, adapter.WrapError(dbcapabilities.PostgreSQL, "list_tables", err)
		}
		tables = append(tables, tableName)
	}

	if err := rows.Err(); err != nil {
		return nil, adapter.WrapError(dbcapabilities.PostgreSQL, "list_tables", err)
	}

	return tables, nil
}

// ListColumns returns the column definitions of a table in physical column
// order. Dropped and system columns (attnum <= 0, attisdropped) are
// excluded. Nullable is the negation of the catalog's not-null flag.
func (s *SchemaOps) ListColumns(ctx context.Context, table string) ([]schema.ColumnDefinition, error) {
	query := `
		SELECT a.attname,
			format_type(a.atttypid, a.atttypmod),
			pg_get_expr(d.adbin, d.adrelid),
			a.attnotnull,
			a.attnum
		FROM pg_attribute a
		LEFT JOIN pg_attrdef d ON a.attrelid = d.adrelid AND a.attnum = d.adnum
		WHERE a.attrelid = $1::regclass
		AND a.attnum > 0
		AND NOT a.attisdropped
		ORDER BY a.attnum
	`

	rows, err := s.conn.pool.Query(ctx, query, table)
	if err != nil {
		return nil, adapter.WrapError(dbcapabilities.PostgreSQL, "list_columns", err)
	}
	defer rows.Close()

	var columns []schema.ColumnDefinition
	for rows.Next() {
		var name, dataType string
		var columnDefault sql.NullString
		var notNull bool
		var position int

		if err := rows.Scan(&name, &dataType, &columnDefault, &notNull, &position); err != nil {
			return nil, adapter.WrapError(dbcapabilities.PostgreSQL, "list_columns", err)
		}

		var rawDefault *string
		if columnDefault.Valid {
			rawDefault = &columnDefault.String
		}

		columns = append(columns, columnFromCatalogRow(name, dataType, rawDefault, notNull, position))
	}

	if err := rows.Err(); err != nil {
		return nil, adapter.WrapError(dbcapabilities.PostgreSQL, "list_columns", err)
	}

	return columns, nil
}

// columnFromCatalogRow builds one ColumnDefinition from a catalog row.
// The type name goes through the type translator, the default expression
// through the default parser (keeping the raw expression alongside), and
// Nullable is the single negation of the catalog's not-null flag.
func columnFromCatalogRow(name, dataType string, rawDefault *string, notNull bool, position int) schema.ColumnDefinition {
	column := schema.ColumnDefinition{
		Name:     name,
		Type:     translateType(dataType),
		Default:  parseDefault(rawDefault),
		Nullable: !notNull,
		Position: position,
	}
	if rawDefault != nil {
		column.RawDefault = *rawDefault
	}
	return column
}

// ListIndexes returns the table's secondary indexes ordered by index name.
// The primary-key index is excluded in the query. Member columns are
// ordered by their position in the index key; grouping is an explicit
// group-by-name step and does not depend on catalog row contiguity.
func (s *SchemaOps) ListIndexes(ctx context.Context, table string) ([]schema.IndexDefinition, error) {
	query := `
		SELECT i.relname, ix.indisunique, a.attname
		FROM pg_index ix
		JOIN pg_class i ON i.oid = ix.indexrelid
		JOIN pg_class t ON t.oid = ix.indrelid
		CROSS JOIN LATERAL unnest(ix.indkey) WITH ORDINALITY AS k(attnum, ord)
		JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = k.attnum
		WHERE t.oid = $1::regclass
		AND NOT ix.indisprimary
		ORDER BY i.relname, k.ord
	`

	rows, err := s.conn.pool.Query(ctx, query, table)
	if err != nil {
		return nil, adapter.WrapError(dbcapabilities.PostgreSQL, "list_indexes", err)
	}
	defer rows.Close()

	var indexRows []indexRow
	for rows.Next() {
		var row indexRow
		if err := rows.Scan(&row.index, &row.unique, &row.column); err != nil {
			return nil, adapter.WrapError(dbcapabilities.PostgreSQL, "list_indexes", err)
		}
		indexRows = append(indexRows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, adapter.WrapError(dbcapabilities.PostgreSQL, "list_indexes", err)
	}

	return groupIndexRows(table, indexRows), nil
}

// indexRow is one catalog row of the index query: one member column of one
// index.
type indexRow struct {
	index  string
	unique bool
	column string
}

// groupIndexRows assembles per-index definitions from catalog rows. Member
// columns keep their row order (the query orders them by index key
// position), but grouping keys on the index name so correctness does not
// depend on rows for one index being contiguous. Output is ordered by
// index name.
func groupIndexRows(table string, rows []indexRow) []schema.IndexDefinition {
	indexMap := make(map[string]*schema.IndexDefinition)
	var names []string
	for _, row := range rows {
		index, exists := indexMap[row.index]
		if !exists {
			index = &schema.IndexDefinition{
				Table:  table,
				Name:   row.index,
				Unique: row.unique,
			}
			indexMap[row.index] = index
			names = append(names, row.index)
		}
		index.Columns = append(index.Columns, row.column)
	}

	sort.Strings(names)

	indexes := make([]schema.IndexDefinition, 0, len(names))
	for _, name := range names {
		indexes = append(indexes, *indexMap[name])
	}

	return indexes
}

// DiscoverSchema fetches all visible tables with their columns and
// indexes.
func (s *SchemaOps) DiscoverSchema(ctx context.Context) ([]schema.TableDefinition, error) {
	tableNames, err := s.ListTables(ctx)
	if err != nil {
		return nil, err
	}

	tables := make([]schema.TableDefinition, 0, len(tableNames))
	for _, name := range tableNames {
		columns, err := s.ListColumns(ctx, name)
		if err != nil {
			return nil, err
		}
		indexes, err := s.ListIndexes(ctx, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, schema.TableDefinition{
			Name:    name,
			Columns: columns,
			Indexes: indexes,
		})
	}

	return tables, nil
}

// AddColumn adds a column, then applies the default and not-null clauses
// as separate statements in that order.
func (s *SchemaOps) AddColumn(ctx context.Context, table, column string, columnType schema.PortableType, opts adapter.AddColumnOptions) error {
	builder := s.conn.StatementBuilder(ctx)
	for _, stmt := range builder.AddColumn(table, column, columnType, opts) {
		if _, err := s.conn.pool.Exec(ctx, stmt); err != nil {
			return adapter.WrapError(dbcapabilities.PostgreSQL, "add_column", err)
		}
	}
	return nil
}

// ChangeColumnType changes a column's type.
func (s *SchemaOps) ChangeColumnType(ctx context.Context, table, column string, columnType schema.PortableType) error {
	stmt := s.conn.StatementBuilder(ctx).ChangeColumnType(table, column, columnType)
	if _, err := s.conn.pool.Exec(ctx, stmt); err != nil {
		return adapter.WrapError(dbcapabilities.PostgreSQL, "change_column_type", err)
	}
	return nil
}

// ChangeColumnDefault changes a column's default value.
func (s *SchemaOps) ChangeColumnDefault(ctx context.Context, table, column string, defaultValue any) error {
	stmt := s.conn.StatementBuilder(ctx).ChangeColumnDefault(table, column, defaultValue)
	if _, err := s.conn.pool.Exec(ctx, stmt); err != nil {
		return adapter.WrapError(dbcapabilities.PostgreSQL, "change_column_default", err)
	}
	return nil
}

// RenameColumn renames a column.
func (s *SchemaOps) RenameColumn(ctx context.Context, table, oldName, newName string) error {
	stmt := s.conn.StatementBuilder(ctx).RenameColumn(table, oldName, newName)
	if _, err := s.conn.pool.Exec(ctx, stmt); err != nil {
		return adapter.WrapError(dbcapabilities.PostgreSQL, "rename_column", err)
	}
	return nil
}

// RemoveIndex drops an index, resolving the name by convention when none
// is given.
func (s *SchemaOps) RemoveIndex(ctx context.Context, table string, opts adapter.RemoveIndexOptions) error {
	stmt := s.conn.StatementBuilder(ctx).RemoveIndex(table, opts)
	if _, err := s.conn.pool.Exec(ctx, stmt); err != nil {
		return adapter.WrapError(dbcapabilities.PostgreSQL, "remove_index", err)
	}
	return nil
}
