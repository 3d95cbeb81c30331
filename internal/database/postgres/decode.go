package postgres

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pgadapt/pgadapt/pkg/schema"
)

// decodeResult turns a raw tabular response into decoded rows. Cells whose
// wire type tag is bytea are routed through the value codec; all other
// cells pass through as text. A zero-row result decodes to an empty slice,
// never nil. Duplicate field names resolve last-write-wins.
func decodeResult(rs *schema.RawResultSet, codec byteaCodec) ([]schema.DecodedRow, error) {
	rows := make([]schema.DecodedRow, 0, len(rs.Rows))
	for _, raw := range rs.Rows {
		row := make(schema.DecodedRow, len(rs.Fields))
		for i, field := range rs.Fields {
			if i >= len(raw) {
				break
			}
			cell := raw[i]
			if cell == nil {
				row[field.Name] = nil
				continue
			}
			if field.TypeOID == pgtype.ByteaOID {
				decoded, err := codec.Unescape(string(cell))
				if err != nil {
					return nil, err
				}
				row[field.Name] = decoded
				continue
			}
			row[field.Name] = string(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
