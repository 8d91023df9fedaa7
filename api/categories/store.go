package categories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matheusot/enquete/api/custom_errors"
	"github.com/matheusot/enquete/database"
)

type Store interface {
	CreateCategory(ctx context.Context, body CreateCategoryBody) (database.Category, error)
	GetCategory(ctx context.Context, categoryID uuid.UUID) (database.Category, error)
	ListCategories(ctx context.Context) ([]database.Category, error)
	UpdateCategory(ctx context.Context, categoryID uuid.UUID, body UpdateCategoryBody) (database.Category, error)
	DeleteCategory(ctx context.Context, categoryID uuid.UUID) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewCategoryStore(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateCategory(ctx context.Context, body CreateCategoryBody) (database.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	description := pgtype.Text{String: body.Description, Valid: body.Description != ""}

	var category database.Category
	err := r.db.QueryRow(ctx,
		`INSERT INTO categories (name, description)
		 VALUES ($1, $2)
		 RETURNING id, name, description, created_at`,
		body.Name, description,
	).Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt)
	if err != nil {
		return database.Category{}, fmt.Errorf("error creating category: %v", err)
	}

	return category, nil
}

func (r *Repository) GetCategory(ctx context.Context, categoryID uuid.UUID) (database.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var category database.Category
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description, created_at FROM categories WHERE id = $1`,
		categoryID,
	).Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Category{}, custom_errors.ErrNotFound
		}
		return database.Category{}, fmt.Errorf("error getting category: %v", err)
	}

	return category, nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]database.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, created_at FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %v", err)
	}
	defer rows.Close()

	var categories []database.Category
	for rows.Next() {
		var category database.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning category: %v", err)
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (r *Repository) UpdateCategory(ctx context.Context, categoryID uuid.UUID, body UpdateCategoryBody) (database.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	name := pgtype.Text{}
	if body.Name != nil {
		name = pgtype.Text{String: *body.Name, Valid: true}
	}

	description := pgtype.Text{}
	if body.Description != nil {
		description = pgtype.Text{String: *body.Description, Valid: true}
	}

	var category database.Category
	err := r.db.QueryRow(ctx,
		`UPDATE categories
		 SET name = COALESCE($2, name), description = COALESCE($3, description)
		 WHERE id = $1
		 RETURNING id, name, description, created_at`,
		categoryID, name, description,
	).Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Category{}, custom_errors.ErrNotFound
		}
		return database.Category{}, fmt.Errorf("error updating category: %v", err)
	}

	return category, nil
}

func (r *Repository) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, categoryID)
	if err != nil {
		return fmt.Errorf("error deleting category: %v", err)
	}
	if tag.RowsAffected() == 0 {
		return custom_errors.ErrNotFound
	}

	return nil
}
