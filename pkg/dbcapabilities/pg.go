package dbcapabilities

import "strings"

// DatabaseType is the canonical identifier for a database technology.
// This module ships a single engine, but the identifier keeps the adapter
// contract engine-agnostic for callers.
type DatabaseType string

const (
	PostgreSQL DatabaseType = "postgres"
)

// Capability describes what an engine supports in a way callers can consume
// without importing engine internals.
type Capability struct {
	// Human-friendly product name, e.g., "PostgreSQL".
	Name string `json:"name"`

	// Canonical ID used across the codebase, e.g., "postgres".
	ID DatabaseType `json:"id"`

	// Default port for plain TCP connections.
	DefaultPort int `json:"defaultPort"`

	// Default schema searched when the connection config gives none.
	DefaultSchema string `json:"defaultSchema"`

	// Character used to quote identifiers in generated SQL.
	IdentifierQuote string `json:"identifierQuote"`

	// Lowest server_version_num whose bytea wire output is hex-encoded.
	// Older servers emit the octal escape format.
	HexByteaVersionFloor int `json:"hexByteaVersionFloor"`

	// Common aliases (directory names, drivers, env labels) that map to
	// this database.
	Aliases []string `json:"aliases,omitempty"`
}

// All is a registry of capabilities keyed by the canonical database ID.
var All = map[DatabaseType]Capability{
	PostgreSQL: {
		Name:                 "PostgreSQL",
		ID:                   PostgreSQL,
		DefaultPort:          5432,
		DefaultSchema:        "public",
		IdentifierQuote:      `"`,
		HexByteaVersionFloor: 90000,
		Aliases:              []string{"postgresql", "pgsql"},
	},
}

// Get returns the capability entry for the given database type.
func Get(id DatabaseType) (Capability, bool) {
	cap, ok := All[id]
	return cap, ok
}

// MustGet returns the capability entry for the given database type and
// panics if it is unknown. Use only with the package's own constants.
func MustGet(id DatabaseType) Capability {
	cap, ok := All[id]
	if !ok {
		panic("dbcapabilities: unknown database type: " + string(id))
	}
	return cap
}

// ParseID resolves an arbitrary database name (canonical id, alias, or
// product name) to its canonical DatabaseType.
func ParseID(name string) (DatabaseType, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for id, cap := range All {
		if string(id) == needle || strings.ToLower(cap.Name) == needle {
			return id, true
		}
		for _, alias := range cap.Aliases {
			if alias == needle {
				return id, true
			}
		}
	}
	return "", false
}
