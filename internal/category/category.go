// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package category defines the fixed set of portfolio categories.
// Categories are build-time constants: they are never persisted and
// never change at runtime. Projects reference them by slug.
package category

// Category pairs a display label with its stable slug identifier.
type Category struct {
	Label string // Display text shown in filters and forms
	Slug  string // Stable identifier stored on projects
}

// All is the ordered list of categories, in display order.
var All = []Category{
	{Label: "Логотипы", Slug: "logos"},
	{Label: "Инфографика", Slug: "infographics"},
	{Label: "Брендбуки", Slug: "brandbooks"},
	{Label: "Веб-дизайн", Slug: "web-design"},
}

// FilterAll is the sentinel slug meaning "no category filter".
const FilterAll = "all"

// Uncategorized is the label shown for projects whose category slug is
// absent or does not match any registered category.
const Uncategorized = "Без категории"

// Label returns the display label for a slug. The second return value
// is false when the slug is not registered.
func Label(slug string) (string, bool) {
	for _, c := range All {
		if c.Slug == slug {
			return c.Label, true
		}
	}
	return "", false
}

// LabelOr returns the display label for a slug, or the Uncategorized
// fallback when the slug is empty or unknown.
func LabelOr(slug string) string {
	if label, ok := Label(slug); ok {
		return label
	}
	return Uncategorized
}

// Valid reports whether the slug names a registered category.
func Valid(slug string) bool {
	_, ok := Label(slug)
	return ok
}

// Default returns the slug of the first category, used as the initial
// selection in the project form.
func Default() string {
	return All[0].Slug
}
