// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"portfolio/internal/category"
)

// Project is a single portfolio entry. The id and created_at are assigned
// by the database on insert; image_url, category_slug, and description are
// nullable. Views defaults to zero when the column is unavailable (older
// schema without the views migration).
type Project struct {
	ID           int64     `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	ImageURL     *string   `json:"image_url"`
	CategorySlug *string   `json:"category_slug"`
	Description  *string   `json:"description"`
	Views        int64     `json:"views"`
}

// Category returns the project's category slug, or "" when unset.
func (p Project) Category() string {
	if p.CategorySlug == nil {
		return ""
	}
	return *p.CategorySlug
}

// CategoryLabel returns the display label of the project's category,
// falling back to the uncategorized label.
func (p Project) CategoryLabel() string {
	return category.LabelOr(p.Category())
}

// HasImage reports whether the project has a cover image set.
func (p Project) HasImage() bool {
	return p.ImageURL != nil && *p.ImageURL != ""
}

// HoverCard reports whether the gallery renders this project as a
// reveal-on-hover card (logos and infographics) instead of the
// image-forward card used for everything else.
func (p Project) HoverCard() bool {
	c := p.Category()
	return c == "logos" || c == "infographics"
}

// FilterByCategory returns the projects whose category slug exactly equals
// selected. The sentinel category.FilterAll passes everything through.
// The input slice is never mutated.
func FilterByCategory(projects []Project, selected string) []Project {
	if selected == category.FilterAll {
		return projects
	}
	var out []Project
	for _, p := range projects {
		if p.Category() == selected {
			out = append(out, p)
		}
	}
	return out
}

// SearchByTitle returns the projects whose title contains the query as a
// case-insensitive substring. An empty or whitespace-only query returns
// the full set unfiltered.
func SearchByTitle(projects []Project, query string) []Project {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return projects
	}
	var out []Project
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Title), q) {
			out = append(out, p)
		}
	}
	return out
}
