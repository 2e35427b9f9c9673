package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RevokedTokenRepository persists the set of revoked token identifiers. Rows
// are written on logout and read on every authenticated request; nothing ever
// deletes them.
type RevokedTokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRevokedTokenRepository creates a new RevokedTokenRepository
func NewRevokedTokenRepository(db *pgxpool.Pool) *RevokedTokenRepository {
	return &RevokedTokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Revoke records a token identifier as revoked. Revoking an already revoked
// identifier is a no-op, not an error.
func (r *RevokedTokenRepository) Revoke(ctx context.Context, jti string) error {
	sql, args, err := r.sb.Insert("revoked_tokens").
		Columns("jti", "revoked_at").
		Values(jti, time.Now()).
		Suffix("ON CONFLICT (jti) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build revoke query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}

	return nil
}

// IsRevoked reports whether a token identifier appears in the revocation list
func (r *RevokedTokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE jti = $1)`, jti).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking token revocation: %w", err)
	}

	return exists, nil
}
