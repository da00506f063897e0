// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import "strings"

// trimOrNil trims a form value and coerces the empty string to nil,
// matching the NULLable project columns.
func trimOrNil(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// projectForm holds the cleaned values of a submitted project form.
type projectForm struct {
	Title        string
	Slug         string
	ImageURL     *string
	CategorySlug *string
	Description  *string
}

// parseProjectForm trims every field and coerces empty optional fields
// to nil. Validation happens in the handlers.
func parseProjectForm(get func(string) string) projectForm {
	return projectForm{
		Title:        strings.TrimSpace(get("title")),
		Slug:         strings.TrimSpace(get("slug")),
		ImageURL:     trimOrNil(get("image_url")),
		CategorySlug: trimOrNil(get("category_slug")),
		Description:  trimOrNil(get("description")),
	}
}
