// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package category

import "testing"

func TestAll_OrderAndUniqueness(t *testing.T) {
	want := []string{"logos", "infographics", "brandbooks", "web-design"}
	if len(All) != len(want) {
		t.Fatalf("All: got %d categories, want %d", len(All), len(want))
	}

	seen := make(map[string]bool)
	for i, c := range All {
		if c.Slug != want[i] {
			t.Errorf("All[%d].Slug = %q, want %q", i, c.Slug, want[i])
		}
		if c.Label == "" {
			t.Errorf("All[%d] (%s) has empty label", i, c.Slug)
		}
		if seen[c.Slug] {
			t.Errorf("duplicate slug %q", c.Slug)
		}
		seen[c.Slug] = true
	}
}

func TestLabel(t *testing.T) {
	label, ok := Label("logos")
	if !ok || label != "Логотипы" {
		t.Errorf("Label(logos) = %q, %v; want Логотипы, true", label, ok)
	}

	if _, ok := Label("sculpture"); ok {
		t.Error("Label(sculpture): want ok=false for unknown slug")
	}
	if _, ok := Label(""); ok {
		t.Error("Label(\"\"): want ok=false for empty slug")
	}
}

func TestLabelOr_FallsBackToUncategorized(t *testing.T) {
	if got := LabelOr("web-design"); got != "Веб-дизайн" {
		t.Errorf("LabelOr(web-design) = %q", got)
	}
	if got := LabelOr(""); got != Uncategorized {
		t.Errorf("LabelOr(\"\") = %q, want %q", got, Uncategorized)
	}
	if got := LabelOr("nope"); got != Uncategorized {
		t.Errorf("LabelOr(nope) = %q, want %q", got, Uncategorized)
	}
}

func TestDefault_IsFirstCategory(t *testing.T) {
	if Default() != All[0].Slug {
		t.Errorf("Default() = %q, want %q", Default(), All[0].Slug)
	}
	if !Valid(Default()) {
		t.Error("Default() must be a valid category")
	}
}
