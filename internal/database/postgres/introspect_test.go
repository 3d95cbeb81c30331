package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgadapt/pgadapt/pkg/schema"
)

func TestColumnFromCatalogRow(t *testing.T) {
	t.Run("three-column table in declaration order", func(t *testing.T) {
		idDefault := "nextval('users_id_seq'::regclass)"
		columns := []schema.ColumnDefinition{
			columnFromCatalogRow("id", "integer", &idDefault, true, 1),
			columnFromCatalogRow("name", "character varying(255)", nil, true, 2),
			columnFromCatalogRow("notes", "text", nil, false, 3),
		}

		assert.Equal(t, "id", columns[0].Name)
		assert.Equal(t, schema.PortableType("integer"), columns[0].Type)
		assert.False(t, columns[0].Nullable)
		assert.Nil(t, columns[0].Default)
		assert.Equal(t, idDefault, columns[0].RawDefault)

		assert.Equal(t, "name", columns[1].Name)
		assert.Equal(t, schema.PortableType("character varying"), columns[1].Type)
		assert.False(t, columns[1].Nullable)
		assert.Empty(t, columns[1].RawDefault)

		assert.Equal(t, "notes", columns[2].Name)
		assert.True(t, columns[2].Nullable)
		assert.Equal(t, 3, columns[2].Position)
	})

	t.Run("nullable is the single negation of not-null", func(t *testing.T) {
		assert.False(t, columnFromCatalogRow("name", "text", nil, true, 1).Nullable)
		assert.True(t, columnFromCatalogRow("name", "text", nil, false, 1).Nullable)
	})

	t.Run("parsed defaults keep the raw expression alongside", func(t *testing.T) {
		raw := "'guest'::character varying"
		column := columnFromCatalogRow("name", "character varying(255)", &raw, false, 2)

		require.NotNil(t, column.Default)
		assert.Equal(t, schema.LiteralString, column.Default.Kind)
		assert.Equal(t, "guest", column.Default.Text)
		assert.Equal(t, raw, column.RawDefault)
	})
}

func TestGroupIndexRows(t *testing.T) {
	t.Run("multi-column indexes keep key order", func(t *testing.T) {
		rows := []indexRow{
			{index: "orders_customer_created_index", unique: false, column: "customer_id"},
			{index: "orders_customer_created_index", unique: false, column: "created_at"},
			{index: "orders_number_index", unique: true, column: "number"},
		}

		indexes := groupIndexRows("orders", rows)
		require.Len(t, indexes, 2)

		assert.Equal(t, schema.IndexDefinition{
			Table:   "orders",
			Name:    "orders_customer_created_index",
			Unique:  false,
			Columns: []string{"customer_id", "created_at"},
		}, indexes[0])

		assert.Equal(t, schema.IndexDefinition{
			Table:   "orders",
			Name:    "orders_number_index",
			Unique:  true,
			Columns: []string{"number"},
		}, indexes[1])
	})

	t.Run("grouping does not depend on row contiguity", func(t *testing.T) {
		rows := []indexRow{
			{index: "a_index", column: "x"},
			{index: "b_index", column: "p"},
			{index: "a_index", column: "y"},
			{index: "b_index", column: "q"},
		}

		indexes := groupIndexRows("t", rows)
		require.Len(t, indexes, 2)
		assert.Equal(t, []string{"x", "y"}, indexes[0].Columns)
		assert.Equal(t, []string{"p", "q"}, indexes[1].Columns)
	})

	t.Run("output is ordered by index name", func(t *testing.T) {
		rows := []indexRow{
			{index: "zeta_index", column: "z"},
			{index: "alpha_index", column: "a"},
		}

		indexes := groupIndexRows("t", rows)
		require.Len(t, indexes, 2)
		assert.Equal(t, "alpha_index", indexes[0].Name)
		assert.Equal(t, "zeta_index", indexes[1].Name)
	})

	t.Run("no rows yields no indexes", func(t *testing.T) {
		assert.Empty(t, groupIndexRows("t", nil))
	})
}
