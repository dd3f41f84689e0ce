package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/amezav/registro-academico-api/internal/models"
)

// CredentialRepository provides database access for login identities.
type CredentialRepository struct {
	db *sqlx.DB
}

// NewCredentialRepository creates a new CredentialRepository.
func NewCredentialRepository(db *sqlx.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// FindByEmail returns a credential by email address.
func (r *CredentialRepository) FindByEmail(ctx context.Context, email string) (*models.Credential, error) {
	const query = `SELECT id, email, password_hash, created_at FROM auth_users WHERE email = $1 LIMIT 1`
	var credential models.Credential
	if err := r.db.GetContext(ctx, &credential, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find credential by email: %w", err)
	}
	return &credential, nil
}

// ExistsByEmail checks whether an email is already registered.
func (r *CredentialRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT 1 FROM auth_users WHERE email = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check credential email: %w", err)
	}
	return true, nil
}

// Create inserts a credential and fills in the generated identifier.
func (r *CredentialRepository) Create(ctx context.Context, credential *models.Credential) error {
	const query = `INSERT INTO auth_users (email, password_hash) VALUES ($1, $2) RETURNING id`
	if err := r.db.GetContext(ctx, &credential.ID, query, credential.Email, credential.PasswordHash); err != nil {
		return fmt.Errorf("create credential: %w", err)
	}
	return nil
}
