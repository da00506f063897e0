// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"portfolio/internal/models"
)

// pgUndefinedColumn is the SQLSTATE for a query referencing a column the
// schema doesn't have (42703). The public listing treats it as a capability
// probe failure and retries without the views column.
const pgUndefinedColumn = "42703"

// ProjectStore handles all project-related database operations.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new ProjectStore with the given database connection.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// ListPublic returns all projects for the public gallery, ordered by
// creation time descending. It first attempts the full column set
// including views; if the views column doesn't exist (older schema), it
// retries without it and every project reports zero views. Any other
// error propagates to the caller.
func (s *ProjectStore) ListPublic() ([]models.Project, error) {
	items, err := s.listWithViews()
	if err == nil {
		return items, nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUndefinedColumn {
		return nil, err
	}

	return s.List()
}

// listWithViews selects the full column set including the views counter.
func (s *ProjectStore) listWithViews() ([]models.Project, error) {
	rows, err := s.db.Query(`
		SELECT id, created_at, title, slug, image_url, category_slug, description, views
		FROM projects
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list projects with views: %w", err)
	}
	defer rows.Close()

	var items []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(
			&p.ID, &p.CreatedAt, &p.Title, &p.Slug,
			&p.ImageURL, &p.CategorySlug, &p.Description, &p.Views,
		); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// List returns all projects with the studio column set (no views),
// ordered by creation time descending.
func (s *ProjectStore) List() ([]models.Project, error) {
	rows, err := s.db.Query(`
		SELECT id, created_at, title, slug, image_url, category_slug, description
		FROM projects
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var items []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(
			&p.ID, &p.CreatedAt, &p.Title, &p.Slug,
			&p.ImageURL, &p.CategorySlug, &p.Description,
		); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// FindByID retrieves a project by its id. Returns nil if not found.
func (s *ProjectStore) FindByID(id int64) (*models.Project, error) {
	p := &models.Project{}
	err := s.db.QueryRow(`
		SELECT id, created_at, title, slug, image_url, category_slug, description
		FROM projects WHERE id = $1
	`, id).Scan(
		&p.ID, &p.CreatedAt, &p.Title, &p.Slug,
		&p.ImageURL, &p.CategorySlug, &p.Description,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	return p, nil
}

// Create inserts a new project and returns it with the database-assigned
// id and creation timestamp.
func (s *ProjectStore) Create(p *models.Project) (*models.Project, error) {
	result := &models.Project{}
	err := s.db.QueryRow(`
		INSERT INTO projects (title, slug, image_url, category_slug, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, title, slug, image_url, category_slug, description
	`, p.Title, p.Slug, p.ImageURL, p.CategorySlug, p.Description,
	).Scan(
		&result.ID, &result.CreatedAt, &result.Title, &result.Slug,
		&result.ImageURL, &result.CategorySlug, &result.Description,
	)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return result, nil
}

// Update modifies an existing project's editable fields by id.
func (s *ProjectStore) Update(p *models.Project) error {
	_, err := s.db.Exec(`
		UPDATE projects SET
			title = $1, slug = $2, image_url = $3, category_slug = $4, description = $5
		WHERE id = $6
	`, p.Title, p.Slug, p.ImageURL, p.CategorySlug, p.Description, p.ID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// Delete removes a project by id. This is a hard delete.
func (s *ProjectStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// IncrementViews atomically increments a project's view counter and
// returns the new authoritative count. Callers must only apply the
// returned value on success and leave their local state untouched on error.
func (s *ProjectStore) IncrementViews(id int64) (int64, error) {
	var views int64
	err := s.db.QueryRow(`
		UPDATE projects SET views = views + 1 WHERE id = $1 RETURNING views
	`, id).Scan(&views)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("increment views: project %d: %w", id, err)
	}
	if err != nil {
		return 0, fmt.Errorf("increment views: %w", err)
	}
	return views, nil
}

// CountByCategory returns the number of projects per category slug.
// Projects without a category are counted under the empty string key.
func (s *ProjectStore) CountByCategory() (map[string]int, error) {
	rows, err := s.db.Query(`
		SELECT COALESCE(category_slug, ''), COUNT(*)
		FROM projects
		GROUP BY category_slug
	`)
	if err != nil {
		return nil, fmt.Errorf("count projects by category: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var slug string
		var n int
		if err := rows.Scan(&slug, &n); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts[slug] = n
	}
	return counts, rows.Err()
}
