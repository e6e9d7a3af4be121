package themestore

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/codr1/themeapi/internal/models"
)

func seedThemes(n int) []models.Theme {
	themes := make([]models.Theme, 0, n)
	for i := 1; i <= n; i++ {
		themes = append(themes, models.Theme{
			ID:           fmt.Sprintf("seed-%d", i),
			Name:         fmt.Sprintf("Seed %d", i),
			Description:  fmt.Sprintf("Seed theme %d", i),
			Colors:       models.Colors{models.ColorPrimary: "#1E88E5"},
			PreviewImage: fmt.Sprintf("https://example.com/%d.png", i),
		})
	}
	return themes
}

func newTestStore(t *testing.T, n int) *Store {
	t.Helper()

	store, err := New(seedThemes(n))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return store
}

func TestNew_RejectsInvalidSeed(t *testing.T) {
	tests := []struct {
		name string
		seed []models.Theme
	}{
		{name: "missing_colors", seed: []models.Theme{{ID: "a", Name: "A"}}},
		{name: "missing_name", seed: []models.Theme{{ID: "a", Colors: models.Colors{}}}},
		{name: "duplicate_id", seed: []models.Theme{
			{ID: "a", Name: "A", Colors: models.Colors{}},
			{ID: "a", Name: "B", Colors: models.Colors{}},
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := New(test.seed); err == nil {
				t.Fatalf("New() expected error")
			}
		})
	}
}

func TestList_SummariesInInsertionOrder(t *testing.T) {
	store := newTestStore(t, 4)

	summaries := store.List()
	if len(summaries) != 4 {
		t.Fatalf("List() len = %d, want 4", len(summaries))
	}
	for i, summary := range summaries {
		wantID := fmt.Sprintf("seed-%d", i+1)
		if summary.ID != wantID {
			t.Fatalf("List()[%d].ID = %q, want %q", i, summary.ID, wantID)
		}
		if summary.PreviewImage == "" || summary.Description == "" {
			t.Fatalf("List()[%d] missing summary fields: %+v", i, summary)
		}
	}
}

func TestList_Empty(t *testing.T) {
	store := newTestStore(t, 0)

	summaries := store.List()
	if summaries == nil || len(summaries) != 0 {
		t.Fatalf("List() = %#v, want empty non-nil slice", summaries)
	}
}

func TestGet_NotFound(t *testing.T) {
	store := newTestStore(t, 2)

	if _, err := store.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	store := newTestStore(t, 1)

	theme, err := store.Get("seed-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	theme.Colors[models.ColorPrimary] = "#000000"
	theme.Name = "Mutated"

	again, err := store.Get("seed-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if again.Name != "Seed 1" || again.Colors[models.ColorPrimary] != "#1E88E5" {
		t.Fatalf("stored theme was mutated through Get result: %+v", again)
	}
}

func TestCreate_ThenGet(t *testing.T) {
	store := newTestStore(t, 3)
	existing := map[string]bool{}
	for _, summary := range store.List() {
		existing[summary.ID] = true
	}

	colors := models.Colors{models.ColorPrimary: "#abc123", models.ColorSecondary: "#000000"}
	id, err := store.Create(models.NewTheme{Name: "T", Description: "desc", Colors: colors})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id == "" || existing[id] {
		t.Fatalf("Create() returned non-fresh id %q", id)
	}

	theme, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if theme.Name != "T" || theme.Description != "desc" {
		t.Fatalf("unexpected theme: %+v", theme)
	}
	if len(theme.Colors) != 2 || theme.Colors[models.ColorPrimary] != "#abc123" {
		t.Fatalf("unexpected colors: %+v", theme.Colors)
	}
	if !strings.HasSuffix(theme.PreviewImage, "text=T") {
		t.Fatalf("unexpected preview: %q", theme.PreviewImage)
	}
	if theme.Typography != nil {
		t.Fatalf("created theme should not carry typography")
	}

	summaries := store.List()
	if summaries[len(summaries)-1].ID != id {
		t.Fatalf("created theme not appended at the end")
	}
}

func TestCreate_DefaultsAndSuppliedPreview(t *testing.T) {
	store := newTestStore(t, 0)

	id, err := store.Create(models.NewTheme{Name: "No Primary", Colors: models.Colors{}})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	theme, _ := store.Get(id)
	if theme.Description != "" {
		t.Fatalf("description = %q, want empty", theme.Description)
	}
	want := "https://dummyimage.com/300x200/4B39EF/FFFFFF&text=No%20Primary"
	if theme.PreviewImage != want {
		t.Fatalf("preview = %q, want %q", theme.PreviewImage, want)
	}

	id, err = store.Create(models.NewTheme{Name: "Custom", Colors: models.Colors{}, PreviewImage: "https://example.com/p.png"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	theme, _ = store.Get(id)
	if theme.PreviewImage != "https://example.com/p.png" {
		t.Fatalf("supplied preview not kept: %q", theme.PreviewImage)
	}
}

func TestCreate_InvalidInputDoesNotMutate(t *testing.T) {
	tests := []struct {
		name  string
		input models.NewTheme
	}{
		{name: "empty_name", input: models.NewTheme{Colors: models.Colors{}}},
		{name: "nil_colors", input: models.NewTheme{Name: "T"}},
		{name: "both_missing", input: models.NewTheme{Description: "only"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			store := newTestStore(t, 2)
			_, err := store.Create(test.input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("Create() error = %v, want ErrInvalidInput", err)
			}
			if store.Count() != 2 {
				t.Fatalf("Count() = %d, want 2", store.Count())
			}
		})
	}
}

func TestCreate_RetriesOnIDCollision(t *testing.T) {
	ids := []string{"seed-1", "seed-2", "fresh"}
	next := 0
	store, err := New(seedThemes(2), WithIDGenerator(func() string {
		id := ids[next]
		next++
		return id
	}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	id, err := store.Create(models.NewTheme{Name: "T", Colors: models.Colors{}})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id != "fresh" {
		t.Fatalf("Create() id = %q, want fresh", id)
	}
}

func TestUpdate_NotFoundDoesNotMutate(t *testing.T) {
	store := newTestStore(t, 2)
	before := store.List()

	_, err := store.Update("missing", models.ThemePatch{Name: models.Some("X")})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update() error = %v, want ErrNotFound", err)
	}

	after := store.List()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("List()[%d] changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestUpdate_FallbackRules(t *testing.T) {
	tests := []struct {
		name            string
		patch           models.ThemePatch
		wantName        string
		wantDescription string
		wantPrimary     string
	}{
		{
			name:            "empty_patch_keeps_everything",
			patch:           models.ThemePatch{},
			wantName:        "Seed 2",
			wantDescription: "Seed theme 2",
			wantPrimary:     "#1E88E5",
		},
		{
			name:            "empty_name_keeps_previous",
			patch:           models.ThemePatch{Name: models.Some("")},
			wantName:        "Seed 2",
			wantDescription: "Seed theme 2",
			wantPrimary:     "#1E88E5",
		},
		{
			name:            "explicit_empty_description_clears",
			patch:           models.ThemePatch{Description: models.Some("")},
			wantName:        "Seed 2",
			wantDescription: "",
			wantPrimary:     "#1E88E5",
		},
		{
			name:            "nil_colors_keeps_previous",
			patch:           models.ThemePatch{Colors: models.Optional[models.Colors]{Set: true}},
			wantName:        "Seed 2",
			wantDescription: "Seed theme 2",
			wantPrimary:     "#1E88E5",
		},
		{
			name: "all_fields",
			patch: models.ThemePatch{
				Name:        models.Some("Renamed"),
				Description: models.Some("New description"),
				Colors:      models.Some(models.Colors{models.ColorPrimary: "#000000"}),
			},
			wantName:        "Renamed",
			wantDescription: "New description",
			wantPrimary:     "#000000",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			store := newTestStore(t, 3)

			previous, err := store.Update("seed-2", test.patch)
			if err != nil {
				t.Fatalf("Update() error = %v", err)
			}
			if previous.Name != "Seed 2" {
				t.Fatalf("Update() previous name = %q", previous.Name)
			}

			theme, err := store.Get("seed-2")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if theme.Name != test.wantName {
				t.Fatalf("name = %q, want %q", theme.Name, test.wantName)
			}
			if theme.Description != test.wantDescription {
				t.Fatalf("description = %q, want %q", theme.Description, test.wantDescription)
			}
			if theme.Colors[models.ColorPrimary] != test.wantPrimary {
				t.Fatalf("primary = %q, want %q", theme.Colors[models.ColorPrimary], test.wantPrimary)
			}
			if theme.PreviewImage != "https://example.com/2.png" {
				t.Fatalf("preview recomputed: %q", theme.PreviewImage)
			}
			if ids := store.List(); ids[1].ID != "seed-2" {
				t.Fatalf("update moved theme: %+v", ids)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t, 3)

	deleted, err := store.Delete("seed-2")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted.ID != "seed-2" {
		t.Fatalf("Delete() returned %q", deleted.ID)
	}
	if store.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", store.Count())
	}
	if _, err := store.Get("seed-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() after delete error = %v, want ErrNotFound", err)
	}

	summaries := store.List()
	if summaries[0].ID != "seed-1" || summaries[1].ID != "seed-3" {
		t.Fatalf("unexpected order after delete: %+v", summaries)
	}

	if _, err := store.Delete("seed-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete() error = %v, want ErrNotFound", err)
	}
	if store.Count() != 2 {
		t.Fatalf("Count() after failed delete = %d, want 2", store.Count())
	}
}

func TestDelete_ReleasesVacatedSlot(t *testing.T) {
	store := newTestStore(t, 3)

	if _, err := store.Delete("seed-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	tail := store.themes[:len(store.themes)+1][len(store.themes)]
	if tail.ID != "" || tail.Colors != nil || tail.Name != "" {
		t.Fatalf("vacated slot still holds a theme: %+v", tail)
	}
}

func TestFeatured(t *testing.T) {
	tests := []struct {
		name    string
		seeded  int
		wantIDs []string
	}{
		{name: "empty", seeded: 0, wantIDs: []string{}},
		{name: "one", seeded: 1, wantIDs: []string{"seed-1"}},
		{name: "three", seeded: 3, wantIDs: []string{"seed-1", "seed-2", "seed-3"}},
		{name: "many", seeded: 6, wantIDs: []string{"seed-1", "seed-2", "seed-3"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			store := newTestStore(t, test.seeded)

			featured := store.Featured()
			if len(featured) != len(test.wantIDs) {
				t.Fatalf("Featured() len = %d, want %d", len(featured), len(test.wantIDs))
			}
			for i, theme := range featured {
				if theme.ID != test.wantIDs[i] {
					t.Fatalf("Featured()[%d] = %q, want %q", i, theme.ID, test.wantIDs[i])
				}
				if theme.Colors == nil {
					t.Fatalf("Featured()[%d] missing colors", i)
				}
			}
		})
	}
}

func TestConcurrentCreates(t *testing.T) {
	store := newTestStore(t, 0)

	const workers = 50
	var wg sync.WaitGroup
	ids := make(chan string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := store.Create(models.NewTheme{Name: fmt.Sprintf("T%d", i), Colors: models.Colors{}})
			if err != nil {
				t.Errorf("Create() error = %v", err)
				return
			}
			ids <- id
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
	if store.Count() != workers {
		t.Fatalf("Count() = %d, want %d", store.Count(), workers)
	}
}
