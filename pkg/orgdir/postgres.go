package orgdir

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations returns the goose migrations creating the organizations table.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

const resolveOrganizationSQL = `
SELECT id
FROM organizations
WHERE lower(tenant_domain) = $1 AND status = 'ACTIVE'
LIMIT 1`

// querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresDirectory resolves organizations from the organizations table.
type PostgresDirectory struct {
	db querier
}

func NewPostgresDirectory(db querier) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

func (d *PostgresDirectory) ResolveOrganizationID(ctx context.Context, tenantDomain string) (string, error) {
	var id string
	err := d.db.QueryRow(ctx, resolveOrganizationSQL, normalizeDomain(tenantDomain)).Scan(&id)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return "", fmt.Errorf("%w: %q", ErrOrganizationNotFound, tenantDomain)
	case err != nil:
		return "", errors.Join(ErrLookupFailed, err)
	}
	return id, nil
}
