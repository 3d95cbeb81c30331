package dbcapabilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	cases := []string{"postgres", "postgresql", "pgsql", "PostgreSQL", " Postgres "}
	for _, name := range cases {
		id, ok := ParseID(name)
		assert.True(t, ok, "name %q", name)
		assert.Equal(t, PostgreSQL, id)
	}

	_, ok := ParseID("mysql")
	assert.False(t, ok)
}

func TestMustGet(t *testing.T) {
	cap := MustGet(PostgreSQL)
	assert.Equal(t, "PostgreSQL", cap.Name)
	assert.Equal(t, 5432, cap.DefaultPort)
	assert.Equal(t, "public", cap.DefaultSchema)
	assert.Equal(t, 90000, cap.HexByteaVersionFloor)

	assert.Panics(t, func() { MustGet("unknown") })
}
