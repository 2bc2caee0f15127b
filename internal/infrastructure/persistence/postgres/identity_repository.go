package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lverg/accountkit/internal/application/ports"
	"github.com/lverg/accountkit/internal/domain"
	domerrors "github.com/lverg/accountkit/internal/domain/errors"
)

// IdentityRepository implements ports.CredentialStore on Postgres. Saves are
// conditioned on the row version so concurrent reset requests cannot
// silently clobber each other.
type IdentityRepository struct {
	pool *pgxpool.Pool
}

func NewIdentityRepository(pool *pgxpool.Pool) *IdentityRepository {
	return &IdentityRepository{pool: pool}
}

const (
	createIdentitySQL = `INSERT INTO identities
		(id, email, password_hash, first_name, last_name, confirmed, reset_fingerprint, reset_expires_at, version, created_at, updated_at)
		VALUES ($1, lower($2), $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	getByEmailSQL = `SELECT id, email, password_hash, first_name, last_name, confirmed, reset_fingerprint, reset_expires_at, version, created_at, updated_at
		FROM identities WHERE email = lower($1)`
	getByFingerprintSQL = `SELECT id, email, password_hash, first_name, last_name, confirmed, reset_fingerprint, reset_expires_at, version, created_at, updated_at
		FROM identities WHERE reset_fingerprint = $1`
	saveIdentitySQL = `UPDATE identities
		SET password_hash = $2, first_name = $3, last_name = $4, confirmed = $5,
		    reset_fingerprint = $6, reset_expires_at = $7, version = version + 1, updated_at = $8
		WHERE id = $1 AND version = $9`
)

func (r *IdentityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	_, err := r.pool.Exec(ctx, createIdentitySQL,
		identity.ID.UUID, identity.Email, identity.PasswordHash,
		identity.FirstName, identity.LastName, identity.Confirmed,
		identity.ResetFingerprint, identity.ResetExpiresAt,
		identity.Version, identity.CreatedAt, identity.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domerrors.ErrEmailTaken
	}
	return err
}

func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	return r.scanOne(r.pool.QueryRow(ctx, getByEmailSQL, email))
}

func (r *IdentityRepository) GetByResetFingerprint(ctx context.Context, fingerprint string) (*domain.Identity, error) {
	return r.scanOne(r.pool.QueryRow(ctx, getByFingerprintSQL, fingerprint))
}

func (r *IdentityRepository) Save(ctx context.Context, identity *domain.Identity) error {
	tag, err := r.pool.Exec(ctx, saveIdentitySQL,
		identity.ID.UUID, identity.PasswordHash, identity.FirstName, identity.LastName,
		identity.Confirmed, identity.ResetFingerprint, identity.ResetExpiresAt,
		identity.UpdatedAt, identity.Version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrVersionConflict
	}
	identity.Version++
	return nil
}

func (r *IdentityRepository) scanOne(row pgx.Row) (*domain.Identity, error) {
	var identity domain.Identity
	err := row.Scan(&identity.ID.UUID, &identity.Email, &identity.PasswordHash,
		&identity.FirstName, &identity.LastName, &identity.Confirmed,
		&identity.ResetFingerprint, &identity.ResetExpiresAt,
		&identity.Version, &identity.CreatedAt, &identity.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &identity, nil
}

var _ ports.CredentialStore = (*IdentityRepository)(nil)
