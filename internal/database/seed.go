// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"portfolio/internal/slug"
)

// Seed populates the database with initial development data: the studio
// administrator and a handful of sample projects. It is a no-op when the
// users table already has rows.
func Seed(db *sql.DB, adminEmail, adminPassword string) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Hash the admin password.
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name)
		VALUES ($1, $2, $3)
	`, adminEmail, string(hash), "Abdullah")
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// Sample projects so the gallery isn't empty on a fresh install.
	samples := []struct {
		title    string
		category string
		image    string
	}{
		{"Эко-айдентика бренда", "logos", "https://picsum.photos/seed/design1/800/1000"},
		{"Веб-интерфейс для финтех продукта", "web-design", "https://picsum.photos/seed/design2/800/1000"},
		{"Инфографика годового роста", "infographics", "https://picsum.photos/seed/design3/800/1000"},
		{"Брендбук Nordic Coffee", "brandbooks", "https://picsum.photos/seed/design4/800/1000"},
		{"Редизайн SaaS-панели", "web-design", "https://picsum.photos/seed/design5/800/1000"},
		{"Минималистичный абстрактный логотип", "logos", "https://picsum.photos/seed/design6/800/1000"},
	}

	for _, s := range samples {
		_, err := db.Exec(`
			INSERT INTO projects (title, slug, image_url, category_slug)
			VALUES ($1, $2, $3, $4)
		`, s.title, slug.Generate(s.title), s.image, s.category)
		if err != nil {
			return fmt.Errorf("seed insert project %q: %w", s.title, err)
		}
	}

	slog.Info("database seeded",
		"admin_email", adminEmail,
		"sample_projects", len(samples),
	)

	return nil
}
