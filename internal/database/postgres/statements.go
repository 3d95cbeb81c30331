package postgres

import (
	"fmt"
	"strconv"
	"time"

	"github.com/lib/pq"

	"github.com/pgadapt/pgadapt/pkg/adapter"
	"github.com/pgadapt/pgadapt/pkg/schema"
)

// StatementBuilder renders schema-mutation operations and literal quoting
// into PostgreSQL SQL. Identifiers go through pq.QuoteIdentifier, so
// embedded quote characters are escaped rather than passed through.
// Binary values are escaped by the connection's resolved bytea codec
// before literal quoting.
type StatementBuilder struct {
	codec byteaCodec
}

// NewStatementBuilder creates a builder using the given bytea codec.
func NewStatementBuilder(codec byteaCodec) *StatementBuilder {
	return &StatementBuilder{codec: codec}
}

// AddColumn renders an add-column operation as up to three ordered
// statements: the column add, then SET DEFAULT when a default is given,
// then SET NOT NULL when requested.
func (b *StatementBuilder) AddColumn(table, column string, columnType schema.PortableType, opts adapter.AddColumnOptions) []string {
	statements := []string{
		fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s",
			pq.QuoteIdentifier(table), pq.QuoteIdentifier(column), columnTypeSQL(columnType)),
	}
	if opts.HasDefault {
		statements = append(statements, b.ChangeColumnDefault(table, column, opts.Default))
	}
	if opts.NotNull {
		statements = append(statements, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET NOT NULL",
			pq.QuoteIdentifier(table), pq.QuoteIdentifier(column)))
	}
	return statements
}

// ChangeColumnType renders a column type change.
func (b *StatementBuilder) ChangeColumnType(table, column string, columnType schema.PortableType) string {
	return fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s TYPE %s",
		pq.QuoteIdentifier(table), pq.QuoteIdentifier(column), columnTypeSQL(columnType))
}

// ChangeColumnDefault renders a column default change. A nil default
// becomes DEFAULT NULL.
func (b *StatementBuilder) ChangeColumnDefault(table, column string, defaultValue any) string {
	return fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET DEFAULT %s",
		pq.QuoteIdentifier(table), pq.QuoteIdentifier(column), b.QuoteValue(defaultValue))
}

// RenameColumn renders a column rename.
func (b *StatementBuilder) RenameColumn(table, oldName, newName string) string {
	return fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %s TO %s",
		pq.QuoteIdentifier(table), pq.QuoteIdentifier(oldName), pq.QuoteIdentifier(newName))
}

// RemoveIndex renders a drop-index statement. When no explicit name is
// given the index name follows the <table>_<column>_index convention.
func (b *StatementBuilder) RemoveIndex(table string, opts adapter.RemoveIndexOptions) string {
	name := opts.Name
	if name == "" {
		name = fmt.Sprintf("%s_%s_index", table, opts.Column)
	}
	return fmt.Sprintf("DROP INDEX %s", pq.QuoteIdentifier(name))
}

// QuoteValue renders a Go value as a SQL literal. Byte slices are escaped
// by the bytea codec before string quoting so arbitrary binary survives
// the text protocol. Statement-builder output interpolates these literals
// by contract; the data path (DataOps) uses bound parameters instead.
func (b *StatementBuilder) QuoteValue(v any) string {
	switch value := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return pq.QuoteLiteral(b.codec.Escape(value))
	case string:
		return pq.QuoteLiteral(value)
	case bool:
		if value {
			return "TRUE"
		}
		return "FALSE"
	case int:
		return strconv.Itoa(value)
	case int32:
		return strconv.FormatInt(int64(value), 10)
	case int64:
		return strconv.FormatInt(value, 10)
	case float32:
		return strconv.FormatFloat(float64(value), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(value, 'g', -1, 64)
	case time.Time:
		return pq.QuoteLiteral(value.Format("2006-01-02 15:04:05.999999"))
	default:
		return pq.QuoteLiteral(fmt.Sprintf("%v", value))
	}
}

// columnTypeSQL maps a portable type back to the engine type used in DDL.
// Raw pass-through names are used verbatim.
func columnTypeSQL(t schema.PortableType) string {
	switch t {
	case schema.TypeDatetime:
		return "timestamp"
	case schema.TypeFloat:
		return "float"
	case schema.TypeString:
		return "character varying(255)"
	case schema.TypeBinary:
		return "bytea"
	case schema.TypeBoolean:
		return "boolean"
	default:
		return string(t)
	}
}
