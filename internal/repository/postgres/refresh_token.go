package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/genoguard-server/internal/model"
)

const refreshTokenColumns = `id, jti, user_id, token_hash, issued_at, expires_at, revoked_at, rotated_from_jti, created_at, updated_at`

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

// RefreshTokenRepository keeps issued refresh tokens keyed by JTI.
type RefreshTokenRepository struct {
	db *Connection
}

func NewRefreshTokenRepository(db *Connection) *RefreshTokenRepository {
	return &RefreshTokenRepository{
		db: db,
	}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token model.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (` + refreshTokenColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())`

	if token.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate refresh token id: %w", err)
		}
		token.ID = id
	}

	_, err := r.db.Exec(ctx, query,
		token.ID, token.JTI, token.UserID, token.TokenHash, token.IssuedAt, token.ExpiresAt,
		token.RevokedAt, token.RotatedFromJTI,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("refresh token %q already issued: %w", token.JTI, err)
		}
		return fmt.Errorf("failed to create refresh token: %w", err)
	}

	return nil
}

func (r *RefreshTokenRepository) GetByJTI(ctx context.Context, jti string) (model.RefreshToken, error) {
	query := `SELECT ` + refreshTokenColumns + ` FROM refresh_tokens WHERE jti = $1`

	token, err := scanRefreshToken(r.db.QueryRow(ctx, query, jti))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.RefreshToken{}, model.ErrNotFound
		}
		return model.RefreshToken{}, fmt.Errorf("failed to get refresh token by jti: %w", err)
	}

	return token, nil
}

// RevokeByJTI revokes a live token. A token that is unknown or already
// revoked yields model.ErrTokenRevoked, so of two concurrent rotations of
// the same token only one succeeds.
func (r *RefreshTokenRepository) RevokeByJTI(ctx context.Context, jti string) error {
	query := `UPDATE refresh_tokens SET revoked_at = NOW(), updated_at = NOW()
			  WHERE jti = $1 AND revoked_at IS NULL
			  RETURNING jti`

	return revokedRow(r.db.QueryRow(ctx, query, jti))
}

func (r *RefreshTokenRepository) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE refresh_tokens SET revoked_at = NOW(), updated_at = NOW()
			  WHERE user_id = $1 AND revoked_at IS NULL`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens of user: %w", err)
	}

	return nil
}

func revokedRow(row pgx.Row) error {
	var jti string
	if err := row.Scan(&jti); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrTokenRevoked
		}
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func scanRefreshToken(row pgx.Row) (model.RefreshToken, error) {
	var token model.RefreshToken
	err := row.Scan(
		&token.ID, &token.JTI, &token.UserID, &token.TokenHash, &token.IssuedAt, &token.ExpiresAt,
		&token.RevokedAt, &token.RotatedFromJTI, &token.CreatedAt, &token.UpdatedAt,
	)
	return token, err
}
