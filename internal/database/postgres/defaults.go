package postgres

import (
	"regexp"
	"strings"
	"time"

	"github.com/pgadapt/pgadapt/pkg/schema"
)

var (
	boolDefaultRegexp     = regexp.MustCompile(`(?i)(true|false)`)
	charDefaultRegexp     = regexp.MustCompile(`^'(.*)'::(?:bpchar|text|character varying)`)
	numericDefaultRegexp  = regexp.MustCompile(`^-?\d+(?:\.\d*)?`)
	nowDefaultRegexp      = regexp.MustCompile(`(?i)^(?:\(?now\(\)|'now'|CURRENT_DATE|CURRENT_TIMESTAMP)(?:::(?:date|timestamp))?`)
	temporalDefaultRegexp = regexp.MustCompile(`^'(.*)'::(?:date|timestamp)`)
)

// parseDefault recovers a portable literal from a column default
// expression as reported by pg_get_expr. Forms are tested in order, first
// match wins; expressions this layer cannot interpret (sequence nextval,
// function calls, user-defined types) yield nil. Total: never errors.
func parseDefault(raw *string) *schema.Literal {
	if raw == nil {
		return nil
	}
	expr := strings.TrimSpace(*raw)
	if expr == "" {
		return nil
	}

	if m := boolDefaultRegexp.FindString(expr); m != "" {
		return &schema.Literal{Kind: schema.LiteralBool, Bool: strings.EqualFold(m, "true")}
	}

	if m := charDefaultRegexp.FindStringSubmatch(expr); m != nil {
		return &schema.Literal{Kind: schema.LiteralString, Text: unquoteBody(m[1])}
	}

	if m := numericDefaultRegexp.FindString(expr); m != "" {
		return &schema.Literal{Kind: schema.LiteralNumeric, Text: m}
	}

	if nowDefaultRegexp.MatchString(expr) {
		// The engine means "time of the operation"; this layer can only
		// report the clock at introspection time. Dynamic lets callers
		// treat it specially.
		return &schema.Literal{Kind: schema.LiteralDatetime, Time: time.Now(), Dynamic: true}
	}

	if m := temporalDefaultRegexp.FindStringSubmatch(expr); m != nil {
		return &schema.Literal{Kind: schema.LiteralString, Text: unquoteBody(m[1])}
	}

	return nil
}

// unquoteBody un-doubles the single quotes inside a quoted literal body.
func unquoteBody(body string) string {
	return strings.ReplaceAll(body, "''", "'")
}
