package postgres

import (
	"strings"

	"github.com/pgadapt/pgadapt/pkg/schema"
)

// typeRule maps a raw type-name prefix to a portable type. Rules are
// evaluated in order; first match wins.
type typeRule struct {
	prefix   string
	portable schema.PortableType
}

var typeRules = []typeRule{
	{"timestamp", schema.TypeDatetime},
	{"real", schema.TypeFloat},
	{"money", schema.TypeFloat},
	{"interval", schema.TypeString},
	{"bytea", schema.TypeBinary},
}

// translateType normalizes a catalog-reported type name (which may carry a
// size or precision qualifier, e.g. "character varying(255)") to the
// portable vocabulary. Unmatched names pass through with the qualifier
// stripped; they are treated as already portable. Total: never fails.
func translateType(raw string) schema.PortableType {
	lowered := strings.ToLower(raw)
	for _, rule := range typeRules {
		if strings.HasPrefix(lowered, rule.prefix) {
			return rule.portable
		}
	}
	if i := strings.IndexByte(raw, '('); i >= 0 {
		raw = strings.TrimSpace(raw[:i])
	}
	return schema.PortableType(raw)
}
