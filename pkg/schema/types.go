// Package schema defines the portable schema and result model produced by
// database adapters. Engine-specific type names, default expressions, and
// wire formats are normalized into these structures before they reach
// callers.
package schema

import "time"

// PortableType is the small fixed vocabulary of logical column types an
// adapter normalizes engine-specific types into. Raw type names with no
// matching normalization rule pass through as-is, so values outside the
// constants below are legal.
type PortableType string

const (
	TypeText     PortableType = "text"
	TypeInteger  PortableType = "integer"
	TypeFloat    PortableType = "float"
	TypeDatetime PortableType = "datetime"
	TypeDate     PortableType = "date"
	TypeString   PortableType = "string"
	TypeBinary   PortableType = "binary"
	TypeBoolean  PortableType = "boolean"
)

// LiteralKind discriminates the parsed representation of a column default.
type LiteralKind string

const (
	LiteralBool     LiteralKind = "bool"
	LiteralNumeric  LiteralKind = "numeric"
	LiteralString   LiteralKind = "string"
	LiteralDatetime LiteralKind = "datetime"
)

// Literal is a column default recovered from an engine default expression.
type Literal struct {
	Kind LiteralKind

	Bool bool
	// Text carries the literal body for numeric and string kinds. Numeric
	// defaults keep their textual form; the caller decides the machine type.
	Text string
	Time time.Time

	// Dynamic marks a default whose engine meaning is "time of the
	// operation" (now(), CURRENT_TIMESTAMP). Time holds the wall clock at
	// introspection time, not a per-insert value; callers that need true
	// insertion-time semantics must handle Dynamic defaults themselves.
	Dynamic bool
}

// ColumnDefinition describes one column of a table, normalized to the
// portable vocabulary. Immutable once constructed.
type ColumnDefinition struct {
	Name string       `json:"name"`
	Type PortableType `json:"type"`

	// Default is the parsed default literal, nil when the column has no
	// default or the expression is unsupported (function call,
	// user-defined type). RawDefault keeps the expression as the catalog
	// reported it for callers that need the unparsed form.
	Default    *Literal `json:"default,omitempty"`
	RawDefault string   `json:"rawDefault,omitempty"`

	Nullable bool `json:"nullable"`

	// Position is the physical column position in the table, 1-based.
	Position int `json:"position"`
}

// IndexDefinition describes a secondary index. Primary-key indexes are
// excluded by the introspection queries that build these.
type IndexDefinition struct {
	Table  string `json:"table"`
	Name   string `json:"name"`
	Unique bool   `json:"unique"`

	// Columns are the member columns ordered by their position in the
	// index key, not alphabetically.
	Columns []string `json:"columns"`
}

// TableDefinition groups the full introspected definition of one table.
type TableDefinition struct {
	Name    string             `json:"name"`
	Columns []ColumnDefinition `json:"columns"`
	Indexes []IndexDefinition  `json:"indexes,omitempty"`
}

// Field is one column of a raw result set: its name and the engine's
// wire-level type tag (a PostgreSQL type OID). The tag is only consulted
// to decide binary decoding.
type Field struct {
	Name    string
	TypeOID uint32
}

// RawResultSet is the undecoded tabular response of one query: field
// descriptions in result order plus rows of raw text-format cells. A nil
// cell is a SQL NULL. Transient: built per execution, discarded after
// decoding.
type RawResultSet struct {
	Fields []Field
	Rows   [][][]byte
}

// DecodedRow maps field names to decoded values (strings, or []byte for
// binary cells). Field names are not guaranteed unique when a query
// selects duplicate-named columns; the last column wins.
type DecodedRow map[string]any
