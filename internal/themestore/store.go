// Package themestore holds the process-lifetime theme collection.
package themestore

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/codr1/themeapi/internal/models"
)

const featuredCount = 3

var (
	ErrNotFound     = errors.New("theme not found")
	ErrInvalidInput = errors.New("name and colors are required")
)

// Store is an ordered, in-memory theme collection. Every method runs as a
// single critical section.
type Store struct {
	mu     sync.RWMutex
	themes []models.Theme
	newID  func() string
}

type Option func(*Store)

// WithIDGenerator replaces the UUID generator, mostly for tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// New returns a store pre-populated with seed, in order. Seed themes keep
// their ids and preview URLs verbatim.
func New(seed []models.Theme, opts ...Option) (*Store, error) {
	s := &Store{
		themes: make([]models.Theme, 0, len(seed)),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	seen := make(map[string]struct{}, len(seed))
	for _, theme := range seed {
		if err := theme.Validate(); err != nil {
			return nil, fmt.Errorf("invalid seed theme %q: %w", theme.Name, err)
		}
		if _, dup := seen[theme.ID]; dup {
			return nil, fmt.Errorf("duplicate seed theme id %q", theme.ID)
		}
		seen[theme.ID] = struct{}{}
		s.themes = append(s.themes, theme.Clone())
	}
	return s, nil
}

func (s *Store) List() []models.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]models.Summary, 0, len(s.themes))
	for _, theme := range s.themes {
		summaries = append(summaries, theme.Summary())
	}
	return summaries
}

func (s *Store) Get(id string) (models.Theme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Theme{}, ErrNotFound
	}
	return s.themes[idx].Clone(), nil
}

// Create appends a new theme and returns its generated id.
func (s *Store) Create(input models.NewTheme) (string, error) {
	if input.Name == "" || input.Colors == nil {
		return "", ErrInvalidInput
	}

	preview := input.PreviewImage
	if preview == "" {
		preview = models.DerivePreview(input.Colors, input.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for s.indexOf(id) >= 0 {
		id = s.newID()
	}

	s.themes = append(s.themes, models.Theme{
		ID:           id,
		Name:         input.Name,
		Description:  input.Description,
		Colors:       input.Colors.Clone(),
		PreviewImage: preview,
	})
	return id, nil
}

// Update applies patch in place and returns the theme as it was before.
// Name and colors are only replaced by non-empty values; description is
// replaced whenever it was supplied. The preview image never changes.
func (s *Store) Update(id string, patch models.ThemePatch) (models.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Theme{}, ErrNotFound
	}

	previous := s.themes[idx].Clone()
	theme := &s.themes[idx]
	if patch.Name.Set && patch.Name.Value != "" {
		theme.Name = patch.Name.Value
	}
	if patch.Description.Set {
		theme.Description = patch.Description.Value
	}
	if patch.Colors.Set && patch.Colors.Value != nil {
		theme.Colors = patch.Colors.Value.Clone()
	}
	return previous, nil
}

// Delete removes the theme and returns it.
func (s *Store) Delete(id string) (models.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Theme{}, ErrNotFound
	}

	deleted := s.themes[idx]
	s.themes = slices.Delete(s.themes, idx, idx+1)
	return deleted, nil
}

// Featured returns up to the first three themes in insertion order.
func (s *Store) Featured() []models.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := min(featuredCount, len(s.themes))
	featured := make([]models.Theme, 0, n)
	for _, theme := range s.themes[:n] {
		featured = append(featured, theme.Clone())
	}
	return featured
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.themes)
}

func (s *Store) indexOf(id string) int {
	for i := range s.themes {
		if s.themes[i].ID == id {
			return i
		}
	}
	return -1
}
