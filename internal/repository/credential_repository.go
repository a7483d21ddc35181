package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gpsbazar/school-records-api/internal/models"
)

// CredentialRepository stores the single shared admin credential pair.
type CredentialRepository struct {
	db *sqlx.DB
}

// NewCredentialRepository constructs a CredentialRepository.
func NewCredentialRepository(db *sqlx.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Get returns the stored credential, sql.ErrNoRows when none exists.
func (r *CredentialRepository) Get(ctx context.Context) (*models.AdminCredential, error) {
	const query = "SELECT username, password_hash, updated_at FROM admin_credentials LIMIT 1"
	var cred models.AdminCredential
	if err := r.db.GetContext(ctx, &cred, query); err != nil {
		return nil, err
	}
	return &cred, nil
}

// Save replaces the stored credential. The table holds at most one row.
func (r *CredentialRepository) Save(ctx context.Context, cred *models.AdminCredential) error {
	cred.UpdatedAt = time.Now().UTC()
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin credential save: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM admin_credentials"); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear credentials: %w", err)
	}
	const insert = "INSERT INTO admin_credentials (username, password_hash, updated_at) VALUES ($1, $2, $3)"
	if _, err := tx.ExecContext(ctx, insert, cred.Username, cred.PasswordHash, cred.UpdatedAt); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("save credentials: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit credential save: %w", err)
	}
	return nil
}
