package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/pgadapt/pgadapt/pkg/adapter"
	"github.com/pgadapt/pgadapt/pkg/dbcapabilities"
	"github.com/pgadapt/pgadapt/pkg/schema"
)

// buildConnString assembles a postgres:// connection URL from the
// configuration.
func buildConnString(config adapter.ConnectionConfig) string {
	var connString strings.Builder

	port := config.Port
	if port == 0 {
		port = dbcapabilities.MustGet(dbcapabilities.PostgreSQL).DefaultPort
	}

	fmt.Fprintf(&connString, "postgres://%s:%s@%s:%d/%s",
		config.Username,
		config.Password,
		config.Host,
		port,
		config.DatabaseName)

	if config.SSL {
		sslMode := config.SSLMode
		if sslMode == "" {
			sslMode = "verify-full"
		}
		fmt.Fprintf(&connString, "?sslmode=%s", sslMode)

		if config.SSLCert != nil && *config.SSLCert != "" && config.SSLKey != nil && *config.SSLKey != "" {
			fmt.Fprintf(&connString, "&sslcert=%s&sslkey=%s", *config.SSLCert, *config.SSLKey)
		}
		if config.SSLRootCert != nil && *config.SSLRootCert != "" {
			fmt.Fprintf(&connString, "&sslrootcert=%s", *config.SSLRootCert)
		}
	} else {
		connString.WriteString("?sslmode=disable")
	}

	return connString.String()
}

// sessionRuntimeParams builds the startup parameters carrying the
// configured session options: client encoding, schema search path, and
// minimum server message severity. Applied as runtime parameters on the
// pool config so every pooled connection receives them, not just the one
// a SET statement happens to run on.
func sessionRuntimeParams(config adapter.ConnectionConfig) map[string]string {
	params := make(map[string]string)

	if config.ClientEncoding != "" {
		params["client_encoding"] = config.ClientEncoding
	}

	if schemas := config.SearchPathSchemas(); len(schemas) > 0 {
		quoted := make([]string, len(schemas))
		for i, s := range schemas {
			quoted[i] = pq.QuoteIdentifier(s)
		}
		params["search_path"] = strings.Join(quoted, ", ")
	}

	if config.MinMessages != "" {
		params["client_min_messages"] = config.MinMessages
	}

	return params
}

// serverVersionNum fetches the server's numeric version (e.g. 150004).
func (c *Connection) serverVersionNum(ctx context.Context) (int, error) {
	var version string
	if err := c.pool.QueryRow(ctx, "SHOW server_version_num").Scan(&version); err != nil {
		return 0, fmt.Errorf("error fetching server version: %w", err)
	}
	versionNum, err := strconv.Atoi(version)
	if err != nil {
		return 0, fmt.Errorf("error parsing server version: %w", err)
	}
	return versionNum, nil
}

// queryRaw executes a statement over the simple protocol so every cell
// arrives in text format, and captures the undecoded response. Row cell
// buffers are copied because pgx reuses them between rows.
func (c *Connection) queryRaw(ctx context.Context, sql string) (*schema.RawResultSet, error) {
	rows, err := c.pool.Query(ctx, sql, pgx.QueryExecModeSimpleProtocol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	descriptions := rows.FieldDescriptions()
	fields := make([]schema.Field, len(descriptions))
	for i, desc := range descriptions {
		fields[i] = schema.Field{Name: desc.Name, TypeOID: desc.DataTypeOID}
	}

	rs := &schema.RawResultSet{Fields: fields}
	for rows.Next() {
		rs.Rows = append(rs.Rows, copyRow(rows.RawValues()))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rs, nil
}

// copyRow copies one row's cell buffers, which pgx reuses between rows.
// A nil cell stays nil (SQL NULL); a non-nil zero-length cell stays a
// non-nil empty slice (empty string), so the copy never conflates the two.
func copyRow(raw [][]byte) [][]byte {
	cells := make([][]byte, len(raw))
	for i, cell := range raw {
		if cell == nil {
			continue
		}
		cells[i] = make([]byte, len(cell))
		copy(cells[i], cell)
	}
	return cells
}
