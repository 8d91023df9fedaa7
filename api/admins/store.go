package admins

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the admins allow-list. An email is an administrator iff a row
// with that email exists.
type Store interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewAdminStore(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) IsAdmin(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM admins WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking admin allow-list: %v", err)
	}

	return exists, nil
}
