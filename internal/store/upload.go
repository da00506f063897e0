// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"portfolio/internal/models"
)

// UploadStore tracks files stored in object storage.
type UploadStore struct {
	db *sql.DB
}

// NewUploadStore creates a new UploadStore with the given database connection.
func NewUploadStore(db *sql.DB) *UploadStore {
	return &UploadStore{db: db}
}

const uploadColumns = `id, filename, original_name, content_type, size_bytes, key, created_at`

// List returns all uploads, newest first.
func (s *UploadStore) List() ([]models.Upload, error) {
	rows, err := s.db.Query(`SELECT ` + uploadColumns + ` FROM uploads ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	defer rows.Close()

	var items []models.Upload
	for rows.Next() {
		var u models.Upload
		if err := rows.Scan(
			&u.ID, &u.Filename, &u.OriginalName, &u.ContentType,
			&u.SizeBytes, &u.Key, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan upload: %w", err)
		}
		items = append(items, u)
	}
	return items, rows.Err()
}

// Create inserts a new upload record and returns it with the generated ID.
func (s *UploadStore) Create(u *models.Upload) (*models.Upload, error) {
	result := &models.Upload{}
	err := s.db.QueryRow(`
		INSERT INTO uploads (filename, original_name, content_type, size_bytes, key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+uploadColumns,
		u.Filename, u.OriginalName, u.ContentType, u.SizeBytes, u.Key,
	).Scan(
		&result.ID, &result.Filename, &result.OriginalName, &result.ContentType,
		&result.SizeBytes, &result.Key, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create upload: %w", err)
	}
	return result, nil
}

// FindByID retrieves an upload by ID. Returns nil if not found.
func (s *UploadStore) FindByID(id uuid.UUID) (*models.Upload, error) {
	row := s.db.QueryRow(`SELECT `+uploadColumns+` FROM uploads WHERE id = $1`, id)
	u := &models.Upload{}
	err := row.Scan(
		&u.ID, &u.Filename, &u.OriginalName, &u.ContentType,
		&u.SizeBytes, &u.Key, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find upload by id: %w", err)
	}
	return u, nil
}

// DeleteByKey removes an upload record by its storage key. Returns nil
// if no record tracks that key.
func (s *UploadStore) DeleteByKey(key string) (*models.Upload, error) {
	row := s.db.QueryRow(`DELETE FROM uploads WHERE key = $1 RETURNING `+uploadColumns, key)
	u := &models.Upload{}
	err := row.Scan(
		&u.ID, &u.Filename, &u.OriginalName, &u.ContentType,
		&u.SizeBytes, &u.Key, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete upload by key: %w", err)
	}
	return u, nil
}

// Delete removes an upload record by ID, returning the deleted row so the
// caller can clean up the stored object. Returns nil if not found.
func (s *UploadStore) Delete(id uuid.UUID) (*models.Upload, error) {
	row := s.db.QueryRow(`DELETE FROM uploads WHERE id = $1 RETURNING `+uploadColumns, id)
	u := &models.Upload{}
	err := row.Scan(
		&u.ID, &u.Filename, &u.OriginalName, &u.ContentType,
		&u.SizeBytes, &u.Key, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete upload: %w", err)
	}
	return u, nil
}
