package postgres

import (
	"encoding/hex"
	"strings"

	"github.com/pgadapt/pgadapt/pkg/adapter"
	"github.com/pgadapt/pgadapt/pkg/dbcapabilities"
)

// byteaCodec round-trips arbitrary byte sequences through the text
// representation of a bytea value. Escape output is safe to embed inside a
// quoted SQL string literal; Unescape is its exact inverse on well-formed
// engine output.
type byteaCodec interface {
	Escape(data []byte) string
	Unescape(text string) ([]byte, error)
}

// resolveByteaCodec picks the codec matching the server's bytea wire
// format. Servers at or above the hex floor (9.0) emit hex output; older
// servers emit the octal escape format. Pure and re-entrant: callers cache
// the result once per connection.
func resolveByteaCodec(serverVersionNum int) byteaCodec {
	if serverVersionNum >= dbcapabilities.MustGet(dbcapabilities.PostgreSQL).HexByteaVersionFloor {
		return hexByteaCodec{}
	}
	return escapeByteaCodec{}
}

// hexByteaCodec delegates to the hex primitive: \x followed by two
// lowercase hex digits per byte.
type hexByteaCodec struct{}

func (hexByteaCodec) Escape(data []byte) string {
	return `\x` + hex.EncodeToString(data)
}

func (hexByteaCodec) Unescape(text string) ([]byte, error) {
	if !strings.HasPrefix(text, `\x`) {
		return nil, adapter.NewDecodeError(dbcapabilities.PostgreSQL, 0, `missing \x prefix`)
	}
	data, err := hex.DecodeString(text[2:])
	if err != nil {
		return nil, adapter.NewDecodeError(dbcapabilities.PostgreSQL, 2, err.Error())
	}
	return data, nil
}

// escapeByteaCodec implements the octal escape format used by servers
// before 9.0. Escape renders every byte as a backslash followed by three
// octal digits. Unescape accepts the server's mixed output: plain bytes
// pass through, a doubled backslash decodes to one backslash, and a
// backslash with three octal digits decodes to one byte.
type escapeByteaCodec struct{}

func (escapeByteaCodec) Escape(data []byte) string {
	var b strings.Builder
	b.Grow(len(data) * 4)
	for _, c := range data {
		b.WriteByte('\\')
		b.WriteByte('0' + (c>>6)&7)
		b.WriteByte('0' + (c>>3)&7)
		b.WriteByte('0' + c&7)
	}
	return b.String()
}

func (escapeByteaCodec) Unescape(text string) ([]byte, error) {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); {
		c := text[i]
		if c != '\\' {
			out = append(out, c)
			i++
			continue
		}
		// A backslash must start a complete escape; anything shorter is a
		// format error, not a truncation point.
		if i+1 < len(text) && text[i+1] == '\\' {
			out = append(out, '\\')
			i += 2
			continue
		}
		if i+3 < len(text) && isOctalDigit(text[i+1]) && isOctalDigit(text[i+2]) && isOctalDigit(text[i+3]) {
			out = append(out, (text[i+1]-'0')<<6|(text[i+2]-'0')<<3|(text[i+3]-'0'))
			i += 4
			continue
		}
		return nil, adapter.NewDecodeError(dbcapabilities.PostgreSQL, i, "incomplete octal escape")
	}
	return out, nil
}

func isOctalDigit(c byte) bool {
	return c >= '0' && c <= '7'
}
