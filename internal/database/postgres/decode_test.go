package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgadapt/pgadapt/pkg/adapter"
	"github.com/pgadapt/pgadapt/pkg/schema"
)

func TestDecodeResult(t *testing.T) {
	t.Run("binary cells are unescaped", func(t *testing.T) {
		codec := escapeByteaCodec{}
		raw := []byte{0x00, 0x5C, 0xFF}
		rs := &schema.RawResultSet{
			Fields: []schema.Field{{Name: "payload", TypeOID: pgtype.ByteaOID}},
			Rows:   [][][]byte{{[]byte(codec.Escape(raw))}},
		}

		rows, err := decodeResult(rs, codec)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, raw, rows[0]["payload"])
	})

	t.Run("text cells pass through unchanged", func(t *testing.T) {
		rs := &schema.RawResultSet{
			Fields: []schema.Field{
				{Name: "id", TypeOID: pgtype.Int4OID},
				{Name: "name", TypeOID: pgtype.TextOID},
			},
			Rows: [][][]byte{{[]byte("1"), []byte("alice")}},
		}

		rows, err := decodeResult(rs, hexByteaCodec{})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "1", rows[0]["id"])
		assert.Equal(t, "alice", rows[0]["name"])
	})

	t.Run("empty string cells stay empty, not null", func(t *testing.T) {
		rs := &schema.RawResultSet{
			Fields: []schema.Field{{Name: "notes", TypeOID: pgtype.TextOID}},
			Rows:   [][][]byte{{{}}},
		}

		rows, err := decodeResult(rs, hexByteaCodec{})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "", rows[0]["notes"])
	})

	t.Run("null cells decode to nil", func(t *testing.T) {
		rs := &schema.RawResultSet{
			Fields: []schema.Field{{Name: "notes", TypeOID: pgtype.TextOID}},
			Rows:   [][][]byte{{nil}},
		}

		rows, err := decodeResult(rs, hexByteaCodec{})
		require.NoError(t, err)
		require.Len(t, rows, 1)

		value, present := rows[0]["notes"]
		assert.True(t, present)
		assert.Nil(t, value)
	})

	t.Run("empty result decodes to an empty slice", func(t *testing.T) {
		rs := &schema.RawResultSet{
			Fields: []schema.Field{{Name: "id", TypeOID: pgtype.Int4OID}},
		}

		rows, err := decodeResult(rs, hexByteaCodec{})
		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Len(t, rows, 0)
	})

	t.Run("duplicate field names resolve last-write-wins", func(t *testing.T) {
		rs := &schema.RawResultSet{
			Fields: []schema.Field{
				{Name: "id", TypeOID: pgtype.Int4OID},
				{Name: "id", TypeOID: pgtype.Int4OID},
			},
			Rows: [][][]byte{{[]byte("1"), []byte("2")}},
		}

		rows, err := decodeResult(rs, hexByteaCodec{})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "2", rows[0]["id"])
	})

	t.Run("malformed binary cell aborts the decode", func(t *testing.T) {
		rs := &schema.RawResultSet{
			Fields: []schema.Field{{Name: "payload", TypeOID: pgtype.ByteaOID}},
			Rows:   [][][]byte{{[]byte(`\37`)}},
		}

		rows, err := decodeResult(rs, escapeByteaCodec{})
		require.Error(t, err)
		assert.ErrorIs(t, err, adapter.ErrMalformedEscape)
		assert.Nil(t, rows)
	})
}
