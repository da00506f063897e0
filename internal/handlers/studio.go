// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"portfolio/internal/cache"
	"portfolio/internal/category"
	"portfolio/internal/config"
	"portfolio/internal/models"
	"portfolio/internal/render"
	"portfolio/internal/slug"
	"portfolio/internal/storage"
	"portfolio/internal/store"
)

// Studio groups the authenticated project and media management handlers.
type Studio struct {
	cfg          *config.Config
	renderer     *render.Renderer
	projectStore *store.ProjectStore
	uploadStore  *store.UploadStore
	storage      *storage.Client  // nil when object storage is unconfigured
	pageCache    *cache.PageCache // nil disables invalidation
}

// NewStudio creates a new Studio handler group.
func NewStudio(cfg *config.Config, renderer *render.Renderer, projectStore *store.ProjectStore, uploadStore *store.UploadStore, st *storage.Client, pageCache *cache.PageCache) *Studio {
	return &Studio{
		cfg:          cfg,
		renderer:     renderer,
		projectStore: projectStore,
		uploadStore:  uploadStore,
		storage:      st,
		pageCache:    pageCache,
	}
}

// invalidateGallery drops cached gallery pages after a mutation.
func (s *Studio) invalidateGallery(r *http.Request) {
	if s.pageCache != nil {
		s.pageCache.InvalidateGallery(r.Context())
	}
}

// removeStoredImage cleans up the object behind an image URL once no
// project references it. URLs outside this deployment's storage are left
// alone. Cleanup failures only leak storage, so they are logged and not
// surfaced.
func (s *Studio) removeStoredImage(r *http.Request, imageURL *string) {
	if s.storage == nil || imageURL == nil {
		return
	}
	key, ok := s.storage.ExtractKey(*imageURL)
	if !ok {
		return
	}
	if _, err := s.uploadStore.DeleteByKey(key); err != nil {
		slog.Warn("upload record cleanup failed", "key", key, "error", err)
	}
	if err := s.storage.Delete(r.Context(), key); err != nil {
		slog.Warn("object cleanup failed", "key", key, "error", err)
	}
}

// Projects renders the project list, filtered by the q search parameter.
func (s *Studio) Projects(w http.ResponseWriter, r *http.Request) {
	s.projectsPage(w, r, "")
}

func (s *Studio) projectsPage(w http.ResponseWriter, r *http.Request, errMsg string) {
	// ListPublic tolerates a schema without the views column, so the
	// table's view counts stay accurate on both schema generations.
	projects, err := s.projectStore.ListPublic()
	if err != nil {
		slog.Error("project list failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	query := r.URL.Query().Get("q")
	projects = models.SearchByTitle(projects, query)

	s.renderer.Page(w, r, "projects", &render.PageData{
		Title:   "Проекты",
		Section: "projects",
		Error:   errMsg,
		Data: map[string]any{
			"Projects": projects,
			"Query":    query,
		},
	})
}

// NewProject renders the empty project form with the first category
// preselected.
func (s *Studio) NewProject(w http.ResponseWriter, r *http.Request) {
	defaultCategory := category.Default()
	s.renderer.Page(w, r, "project_form", &render.PageData{
		Title:   "Новый проект",
		Section: "projects",
		Data:    s.formData("/studio/projects", nil, projectForm{CategorySlug: &defaultCategory}),
	})
}

// CreateProject validates the submitted form and inserts the project.
func (s *Studio) CreateProject(w http.ResponseWriter, r *http.Request) {
	form := parseProjectForm(r.FormValue)

	if form.Slug == "" {
		form.Slug = slug.Generate(form.Title)
	}
	if form.Title == "" || form.Slug == "" {
		s.renderer.Page(w, r, "project_form", &render.PageData{
			Title:   "Новый проект",
			Section: "projects",
			Error:   "Заполните название и slug",
			Data:    s.formData("/studio/projects", nil, form),
		})
		return
	}

	project := &models.Project{
		Title:        form.Title,
		Slug:         form.Slug,
		ImageURL:     form.ImageURL,
		CategorySlug: form.CategorySlug,
		Description:  form.Description,
	}

	created, err := s.projectStore.Create(project)
	if err != nil {
		slog.Error("project create failed", "error", err)
		s.renderer.Page(w, r, "project_form", &render.PageData{
			Title:   "Новый проект",
			Section: "projects",
			Error:   "Ошибка создания проекта",
			Data:    s.formData("/studio/projects", nil, form),
		})
		return
	}

	slog.Info("project created", "id", created.ID, "slug", created.Slug)
	s.invalidateGallery(r)
	http.Redirect(w, r, "/studio/projects", http.StatusSeeOther)
}

// EditProject renders the form prefilled with an existing project.
func (s *Studio) EditProject(w http.ResponseWriter, r *http.Request) {
	project, ok := s.findProject(w, r)
	if !ok {
		return
	}

	form := projectForm{
		Title:        project.Title,
		Slug:         project.Slug,
		ImageURL:     project.ImageURL,
		CategorySlug: project.CategorySlug,
		Description:  project.Description,
	}

	s.renderer.Page(w, r, "project_form", &render.PageData{
		Title:   "Изменить проект",
		Section: "projects",
		Data:    s.formData(editAction(project.ID), project, form),
	})
}

// UpdateProject validates the submitted form and saves the project.
func (s *Studio) UpdateProject(w http.ResponseWriter, r *http.Request) {
	project, ok := s.findProject(w, r)
	if !ok {
		return
	}

	form := parseProjectForm(r.FormValue)
	if form.Slug == "" {
		form.Slug = slug.Generate(form.Title)
	}
	if form.Title == "" || form.Slug == "" {
		s.renderer.Page(w, r, "project_form", &render.PageData{
			Title:   "Изменить проект",
			Section: "projects",
			Error:   "Заполните название и slug",
			Data:    s.formData(editAction(project.ID), project, form),
		})
		return
	}

	previousImage := project.ImageURL

	project.Title = form.Title
	project.Slug = form.Slug
	project.ImageURL = form.ImageURL
	project.CategorySlug = form.CategorySlug
	project.Description = form.Description

	if err := s.projectStore.Update(project); err != nil {
		slog.Error("project update failed", "id", project.ID, "error", err)
		s.renderer.Page(w, r, "project_form", &render.PageData{
			Title:   "Изменить проект",
			Section: "projects",
			Error:   "Ошибка обновления проекта",
			Data:    s.formData(editAction(project.ID), project, form),
		})
		return
	}

	// A replaced or cleared image leaves its stored object orphaned.
	if previousImage != nil && (form.ImageURL == nil || *form.ImageURL != *previousImage) {
		s.removeStoredImage(r, previousImage)
	}

	slog.Info("project updated", "id", project.ID, "slug", project.Slug)
	s.invalidateGallery(r)
	http.Redirect(w, r, "/studio/projects", http.StatusSeeOther)
}

// DeleteProject removes a project. The confirmation dialog lives in the
// studio script; by the time this handler runs the admin already agreed.
func (s *Studio) DeleteProject(w http.ResponseWriter, r *http.Request) {
	project, ok := s.findProject(w, r)
	if !ok {
		return
	}

	if err := s.projectStore.Delete(project.ID); err != nil {
		slog.Error("project delete failed", "id", project.ID, "error", err)
		s.projectsPage(w, r, "Ошибка удаления проекта")
		return
	}

	s.removeStoredImage(r, project.ImageURL)

	slog.Info("project deleted", "id", project.ID, "slug", project.Slug)
	s.invalidateGallery(r)
	http.Redirect(w, r, "/studio/projects", http.StatusSeeOther)
}

// Categories renders the fixed category list with per-category project counts.
func (s *Studio) Categories(w http.ResponseWriter, r *http.Request) {
	counts, err := s.projectStore.CountByCategory()
	if err != nil {
		slog.Error("category counts failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Anything not matching a registered category counts as uncategorized.
	uncategorized := 0
	for slug, n := range counts {
		if !category.Valid(slug) {
			uncategorized += n
		}
	}

	s.renderer.Page(w, r, "categories", &render.PageData{
		Title:   "Категории",
		Section: "categories",
		Data: map[string]any{
			"Categories":    category.All,
			"Counts":        counts,
			"Uncategorized": uncategorized,
		},
	})
}

// Media renders the uploaded files list.
func (s *Studio) Media(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"StorageEnabled": s.storage != nil,
	}

	if s.storage != nil {
		uploads, err := s.uploadStore.List()
		if err != nil {
			slog.Error("upload list failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		urls := make(map[string]string, len(uploads))
		for _, u := range uploads {
			urls[u.Key] = s.storage.FileURL(u.Key)
		}

		data["Uploads"] = uploads
		data["URLs"] = urls
	}

	s.renderer.Page(w, r, "media", &render.PageData{
		Title:   "Медиа",
		Section: "media",
		Data:    data,
	})
}

// DeleteMedia removes an upload from object storage and the database.
func (s *Studio) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid upload id", http.StatusBadRequest)
		return
	}

	deleted, err := s.uploadStore.Delete(id)
	if err != nil {
		slog.Error("upload delete failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// The DB row is gone either way; a failed object delete only leaks
	// storage, so log and move on.
	if deleted != nil && s.storage != nil {
		if err := s.storage.Delete(r.Context(), deleted.Key); err != nil {
			slog.Warn("object delete failed", "key", deleted.Key, "error", err)
		}
	}

	http.Redirect(w, r, "/studio/media", http.StatusSeeOther)
}

// findProject resolves the id route parameter to a project, writing the
// appropriate error response when it can't.
func (s *Studio) findProject(w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return nil, false
	}

	project, err := s.projectStore.FindByID(id)
	if err != nil {
		slog.Error("project lookup failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	if project == nil {
		http.Error(w, "project not found", http.StatusNotFound)
		return nil, false
	}

	return project, true
}

// formData assembles the template data for the project form.
func (s *Studio) formData(action string, project *models.Project, form projectForm) map[string]any {
	return map[string]any{
		"Action":        action,
		"Project":       project,
		"Title":         form.Title,
		"Slug":          form.Slug,
		"ImageURL":      deref(form.ImageURL),
		"CategorySlug":  deref(form.CategorySlug),
		"Description":   deref(form.Description),
		"Categories":    category.All,
		"UploadEnabled": s.storage != nil,
	}
}

func editAction(id int64) string {
	return "/studio/projects/" + strconv.FormatInt(id, 10) + "/edit"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
