// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"portfolio/internal/cache"
	"portfolio/internal/category"
	"portfolio/internal/markdown"
	"portfolio/internal/models"
	"portfolio/internal/render"
	"portfolio/internal/store"
)

// Public serves the visitor-facing gallery and the view-count API.
type Public struct {
	renderer     *render.Renderer
	projectStore *store.ProjectStore
	pageCache    *cache.PageCache // nil disables caching
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *render.Renderer, projectStore *store.ProjectStore, pageCache *cache.PageCache) *Public {
	return &Public{
		renderer:     renderer,
		projectStore: projectStore,
		pageCache:    pageCache,
	}
}

// galleryProject pairs a project with its description rendered to HTML.
type galleryProject struct {
	models.Project
	DescriptionHTML template.HTML
}

// Gallery renders the portfolio home page, optionally filtered by the
// category query parameter. Rendered pages for known categories are cached
// in Valkey and invalidated by studio mutations.
func (p *Public) Gallery(w http.ResponseWriter, r *http.Request) {
	selected := r.URL.Query().Get("category")
	if selected == "" {
		selected = category.FilterAll
	}

	// Unknown category values are served uncached so arbitrary query
	// strings can't grow the cache keyspace.
	cacheable := p.pageCache != nil && (selected == category.FilterAll || category.Valid(selected))

	if cacheable {
		if html, ok := p.pageCache.Get(r.Context(), cache.GalleryKey(selected)); ok {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(html)
			return
		}
	}

	// A fetch failure degrades to an empty gallery rather than an error
	// page, so the site stays up while the database is down.
	projects, err := p.projectStore.ListPublic()
	degraded := err != nil
	if degraded {
		slog.Error("gallery fetch failed", "error", err)
		projects = nil
	}

	filtered := models.FilterByCategory(projects, selected)

	items := make([]galleryProject, 0, len(filtered))
	for _, proj := range filtered {
		item := galleryProject{Project: proj}
		if proj.Description != nil {
			html, err := markdown.ToHTML(*proj.Description)
			if err != nil {
				slog.Warn("description render failed", "project_id", proj.ID, "error", err)
			} else {
				item.DescriptionHTML = template.HTML(html)
			}
		}
		items = append(items, item)
	}

	data := &render.PageData{
		Title: "Abdullah.design — Портфолио",
		Data: map[string]any{
			"Projects":   items,
			"Selected":   selected,
			"Categories": category.All,
		},
	}

	if !cacheable {
		p.renderer.Page(w, r, "gallery", data)
		return
	}

	var buf bytes.Buffer
	if err := p.renderer.PageTo(&buf, "gallery", data); err != nil {
		slog.Error("gallery render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Don't cache the degraded empty page produced by a fetch failure.
	if !degraded {
		p.pageCache.Set(r.Context(), cache.GalleryKey(selected), buf.Bytes())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// IncrementViews bumps a project's view counter and returns the new value
// as JSON. Called by the gallery script when a lightbox opens.
func (p *Public) IncrementViews(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}

	views, err := p.projectStore.IncrementViews(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}
		slog.Error("increment views failed", "project_id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"views": views})
}
