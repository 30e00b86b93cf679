package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-bars-app/internal/core/domain/auth"
	"go-bars-app/internal/core/domain/bars"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Save creates the user or refreshes the username of an existing one.
func (r *UserRepository) Save(ctx context.Context, user auth.User) error {
	query := `
		INSERT INTO users (id, username)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE
		SET username = EXCLUDED.username, updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, user.ID, user.Username)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (auth.User, error) {
	query := `SELECT id, username FROM users WHERE id = $1`

	var user auth.User
	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, bars.ErrUserNotFound
		}
		return auth.User{}, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
