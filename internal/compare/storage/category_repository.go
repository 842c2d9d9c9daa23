package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gocompare_api/internal/compare/business/models"
	"gocompare_api/pkg/dbconnect"
)

type CategoryRepository struct {
	db      *sql.DB
	dialect dbconnect.Dialect
}

func NewCategoryRepository(db *sql.DB, dialect dbconnect.Dialect) *CategoryRepository {
	return &CategoryRepository{db: db, dialect: dialect}
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	query := r.dialect.Rebind(`SELECT id, slug, name, display_order FROM categories WHERE slug = $1`)

	var c models.Category
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&c.ID, &c.Slug, &c.Name, &c.DisplayOrder)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category %q: %w", slug, err)
	}
	return &c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, slug, name, display_order FROM categories ORDER BY display_order, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name, &c.DisplayOrder); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error occurred during row iteration: %w", err)
	}
	return categories, nil
}
