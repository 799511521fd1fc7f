package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stockpilot/internal/dbx"
)

// Storage keys. They mirror the names the backend issues the pair under.
const (
	keyAccessToken  = "token"
	keyRefreshToken = "refresh_token"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) get(ctx context.Context, q dbx.DBTX, key string) (string, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) set(ctx context.Context, q dbx.DBTX, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) delete(ctx context.Context, q dbx.DBTX, key string) error {
	_, err := q.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete session[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Read(ctx context.Context) (string, string, error) {
	access, err := r.get(ctx, r.db, keyAccessToken)
	if err != nil {
		return "", "", err
	}
	refresh, err := r.get(ctx, r.db, keyRefreshToken)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Write stores the pair in one transaction, refresh token first: even if
// the transaction is torn apart a reader that observes the new access
// token has observed its matching refresh token.
func (r *SQLiteRepository) Write(ctx context.Context, access, refresh string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := r.set(ctx, tx, keyRefreshToken, refresh); err != nil {
			return err
		}
		return r.set(ctx, tx, keyAccessToken, access)
	})
}

// Clear removes the pair in one transaction, access token first, so no
// reader observes an access token without its refresh token.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := r.delete(ctx, tx, keyAccessToken); err != nil {
			return err
		}
		return r.delete(ctx, tx, keyRefreshToken)
	})
}
