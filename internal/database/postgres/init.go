package postgres

import (
	"github.com/pgadapt/pgadapt/pkg/adapter"
)

func init() {
	// Register PostgreSQL adapter with the global registry
	adapter.Register(NewAdapter())
}
