package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgadapt/pgadapt/pkg/adapter"
	"github.com/pgadapt/pgadapt/pkg/schema"
)

func TestAddColumn(t *testing.T) {
	builder := NewStatementBuilder(hexByteaCodec{})

	t.Run("default and not-null emit separate ordered statements", func(t *testing.T) {
		statements := builder.AddColumn("users", "age", "integer", adapter.AddColumnOptions{
			Default:    0,
			HasDefault: true,
			NotNull:    true,
		})

		require.Len(t, statements, 3)
		assert.Equal(t, `ALTER TABLE "users" ADD COLUMN "age" integer`, statements[0])
		assert.Equal(t, `ALTER TABLE "users" ALTER COLUMN "age" SET DEFAULT 0`, statements[1])
		assert.Equal(t, `ALTER TABLE "users" ALTER COLUMN "age" SET NOT NULL`, statements[2])
	})

	t.Run("bare column add is a single statement", func(t *testing.T) {
		statements := builder.AddColumn("users", "notes", "text", adapter.AddColumnOptions{})
		require.Len(t, statements, 1)
		assert.Equal(t, `ALTER TABLE "users" ADD COLUMN "notes" text`, statements[0])
	})

	t.Run("portable types map to engine types", func(t *testing.T) {
		statements := builder.AddColumn("users", "avatar", schema.TypeBinary, adapter.AddColumnOptions{})
		require.Len(t, statements, 1)
		assert.Equal(t, `ALTER TABLE "users" ADD COLUMN "avatar" bytea`, statements[0])
	})
}

func TestColumnStatements(t *testing.T) {
	builder := NewStatementBuilder(hexByteaCodec{})

	t.Run("change column type", func(t *testing.T) {
		assert.Equal(t, `ALTER TABLE "users" ALTER COLUMN "age" TYPE bigint`,
			builder.ChangeColumnType("users", "age", "bigint"))
	})

	t.Run("change column default", func(t *testing.T) {
		assert.Equal(t, `ALTER TABLE "users" ALTER COLUMN "name" SET DEFAULT 'guest'`,
			builder.ChangeColumnDefault("users", "name", "guest"))
	})

	t.Run("rename column", func(t *testing.T) {
		assert.Equal(t, `ALTER TABLE "users" RENAME COLUMN "name" TO "full_name"`,
			builder.RenameColumn("users", "name", "full_name"))
	})
}

func TestRemoveIndex(t *testing.T) {
	builder := NewStatementBuilder(hexByteaCodec{})

	t.Run("explicit index name", func(t *testing.T) {
		assert.Equal(t, `DROP INDEX "idx_users_email"`,
			builder.RemoveIndex("users", adapter.RemoveIndexOptions{Name: "idx_users_email"}))
	})

	t.Run("name resolved by convention from the column", func(t *testing.T) {
		assert.Equal(t, `DROP INDEX "users_email_index"`,
			builder.RemoveIndex("users", adapter.RemoveIndexOptions{Column: "email"}))
	})
}

func TestQuoteValue(t *testing.T) {
	builder := NewStatementBuilder(escapeByteaCodec{})

	t.Run("binary values route through the codec", func(t *testing.T) {
		quoted := builder.QuoteValue([]byte{0x00, 0xFF})
		assert.Contains(t, quoted, `000`)
		assert.Contains(t, quoted, `377`)
	})

	t.Run("strings are literal quoted", func(t *testing.T) {
		assert.Equal(t, `'it''s'`, builder.QuoteValue("it's"))
	})

	t.Run("scalars", func(t *testing.T) {
		assert.Equal(t, "NULL", builder.QuoteValue(nil))
		assert.Equal(t, "TRUE", builder.QuoteValue(true))
		assert.Equal(t, "FALSE", builder.QuoteValue(false))
		assert.Equal(t, "42", builder.QuoteValue(42))
		assert.Equal(t, "3.5", builder.QuoteValue(3.5))
	})

	t.Run("times render as timestamp literals", func(t *testing.T) {
		ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
		assert.Equal(t, `'2024-01-15 10:30:00'`, builder.QuoteValue(ts))
	})

	t.Run("identifier quoting escapes embedded quotes", func(t *testing.T) {
		statements := builder.AddColumn(`we"ird`, "col", "text", adapter.AddColumnOptions{})
		require.Len(t, statements, 1)
		assert.Equal(t, `ALTER TABLE "we""ird" ADD COLUMN "col" text`, statements[0])
	})
}
