package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pgadapt/pgadapt/pkg/schema"
)

func TestTranslateType(t *testing.T) {
	t.Run("prefix rules", func(t *testing.T) {
		cases := map[string]schema.PortableType{
			"timestamp without time zone": schema.TypeDatetime,
			"timestamp(6) with time zone": schema.TypeDatetime,
			"TIMESTAMP":                   schema.TypeDatetime,
			"real":                        schema.TypeFloat,
			"money":                       schema.TypeFloat,
			"interval":                    schema.TypeString,
			"bytea":                       schema.TypeBinary,
		}
		for raw, want := range cases {
			assert.Equal(t, want, translateType(raw), "raw type %q", raw)
		}
	})

	t.Run("unmatched types pass through", func(t *testing.T) {
		assert.Equal(t, schema.PortableType("integer"), translateType("integer"))
		assert.Equal(t, schema.PortableType("text"), translateType("text"))
		assert.Equal(t, schema.PortableType("boolean"), translateType("boolean"))
		assert.Equal(t, schema.PortableType("citext"), translateType("citext"))
	})

	t.Run("size qualifiers are stripped from pass-through types", func(t *testing.T) {
		assert.Equal(t, schema.PortableType("character varying"), translateType("character varying(255)"))
		assert.Equal(t, schema.PortableType("numeric"), translateType("numeric(10,2)"))
	})
}
