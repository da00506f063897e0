// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"portfolio/internal/models"
)

func strPtr(s string) *string { return &s }

func TestProjectStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)

	slug := "test-create-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanProjects(t, db, slug) })

	created, err := s.Create(&models.Project{
		Title:        "Тестовый проект",
		Slug:         slug,
		ImageURL:     strPtr("https://example.com/a.jpg"),
		CategorySlug: strPtr("logos"),
		Description:  strPtr("Описание"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.ID == 0 {
		t.Error("expected database-assigned id")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected database-assigned created_at")
	}
	if created.Title != "Тестовый проект" {
		t.Errorf("title: got %q", created.Title)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected project, got nil")
	}
	if found.Slug != slug {
		t.Errorf("slug: got %q, want %q", found.Slug, slug)
	}
	if found.CategorySlug == nil || *found.CategorySlug != "logos" {
		t.Errorf("category_slug: got %v", found.CategorySlug)
	}
}

func TestProjectStoreCreateNullableFields(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)

	slug := "test-nulls-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanProjects(t, db, slug) })

	created, err := s.Create(&models.Project{Title: "Без опций", Slug: slug})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.ImageURL != nil || created.CategorySlug != nil || created.Description != nil {
		t.Error("optional fields should round-trip as NULL")
	}
}

func TestProjectStoreFindByIDNotFound(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)

	found, err := s.FindByID(-1)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Error("expected nil for missing project")
	}
}

func TestProjectStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)

	slug := "test-update-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanProjects(t, db, slug) })

	created, err := s.Create(&models.Project{Title: "Before", Slug: slug})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	created.Title = "After"
	created.CategorySlug = strPtr("web-design")
	created.ImageURL = nil // empty-string form values coerce to NULL upstream
	if err := s.Update(created); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Title != "After" {
		t.Errorf("title after update: got %q", found.Title)
	}
	if found.CategorySlug == nil || *found.CategorySlug != "web-design" {
		t.Errorf("category after update: got %v", found.CategorySlug)
	}
	if found.ImageURL != nil {
		t.Error("image_url should be NULL after update")
	}
}

func TestProjectStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)

	slug := "test-delete-" + uuid.NewString()[:8]
	created, err := s.Create(&models.Project{Title: "Doomed", Slug: slug})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Error("project should be gone after delete")
	}
}

func TestProjectStoreIncrementViews(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)

	slug := "test-views-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanProjects(t, db, slug) })

	created, err := s.Create(&models.Project{Title: "Counted", Slug: slug})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	first, err := s.IncrementViews(created.ID)
	if err != nil {
		t.Fatalf("IncrementViews: %v", err)
	}
	if first != 1 {
		t.Errorf("first increment: got %d, want 1", first)
	}

	second, err := s.IncrementViews(created.ID)
	if err != nil {
		t.Fatalf("IncrementViews: %v", err)
	}
	if second != 2 {
		t.Errorf("second increment: got %d, want 2", second)
	}
}

func TestProjectStoreIncrementViewsMissingProject(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)

	if _, err := s.IncrementViews(-1); err == nil {
		t.Error("IncrementViews on a missing project should fail")
	}
}

func TestProjectStoreListPublicIncludesViews(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)

	slug := "test-listpub-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanProjects(t, db, slug) })

	created, err := s.Create(&models.Project{Title: "Listed", Slug: slug})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.IncrementViews(created.ID); err != nil {
		t.Fatalf("IncrementViews: %v", err)
	}

	items, err := s.ListPublic()
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}

	var got *models.Project
	for i := range items {
		if items[i].Slug == slug {
			got = &items[i]
			break
		}
	}
	if got == nil {
		t.Fatal("created project not present in public listing")
	}
	if got.Views != 1 {
		t.Errorf("views: got %d, want 1", got.Views)
	}
}

func TestProjectStoreListPublicWithoutViewsColumn(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)

	slug := "test-fallback-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanProjects(t, db, slug) })

	if _, err := s.Create(&models.Project{Title: "Старая схема", Slug: slug}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Simulate a database that never ran the views migration.
	if _, err := db.Exec(`ALTER TABLE projects DROP COLUMN views`); err != nil {
		t.Fatalf("drop views column: %v", err)
	}
	t.Cleanup(func() {
		if _, err := db.Exec(`ALTER TABLE projects ADD COLUMN views BIGINT NOT NULL DEFAULT 0`); err != nil {
			t.Fatalf("restore views column: %v", err)
		}
	})

	items, err := s.ListPublic()
	if err != nil {
		t.Fatalf("ListPublic on a views-less schema: %v", err)
	}

	for _, p := range items {
		if p.Slug == slug {
			if p.Views != 0 {
				t.Errorf("views via fallback: got %d, want 0", p.Views)
			}
			return
		}
	}
	t.Fatal("created project not present in fallback listing")
}

func TestProjectStoreListPublicPropagatesOtherErrors(t *testing.T) {
	// A closed pool fails with a plain driver error, not an
	// undefined-column SQLSTATE, so no fallback fires.
	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.Close()

	s := NewProjectStore(db)
	if _, err := s.ListPublic(); err == nil {
		t.Error("ListPublic on a closed pool should fail")
	}
}

func TestProjectStoreListOrderedNewestFirst(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)

	older := "test-order-a-" + uuid.NewString()[:8]
	newer := "test-order-b-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanProjects(t, db, older, newer) })

	if _, err := s.Create(&models.Project{Title: "Older", Slug: older}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(&models.Project{Title: "Newer", Slug: newer}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	items, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	olderIdx, newerIdx := -1, -1
	for i, p := range items {
		switch p.Slug {
		case older:
			olderIdx = i
		case newer:
			newerIdx = i
		}
	}
	if olderIdx == -1 || newerIdx == -1 {
		t.Fatal("both test projects should be listed")
	}
	if newerIdx > olderIdx {
		t.Errorf("newer project at %d should precede older at %d", newerIdx, olderIdx)
	}
}

func TestProjectStoreCountByCategory(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)

	slug := "test-count-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanProjects(t, db, slug) })

	if _, err := s.Create(&models.Project{Title: "Counted", Slug: slug, CategorySlug: strPtr("brandbooks")}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	counts, err := s.CountByCategory()
	if err != nil {
		t.Fatalf("CountByCategory: %v", err)
	}
	if counts["brandbooks"] < 1 {
		t.Errorf("brandbooks count: got %d, want >= 1", counts["brandbooks"])
	}
}
