// Package catalog loads the seed theme catalog.
package catalog

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/codr1/themeapi/assets"
	"github.com/codr1/themeapi/internal/models"
)

// SeedThemes returns the embedded sample themes in file order.
func SeedThemes() ([]models.Theme, error) {
	return ParseThemes(assets.ThemesFS, assets.ThemesPath)
}

// ParseThemes reads a YAML list of themes from fsys. Every entry must pass
// models.Theme.Validate and ids must be unique.
func ParseThemes(fsys fs.FS, path string) ([]models.Theme, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open themes file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var themes []models.Theme
	if err := decoder.Decode(&themes); err != nil {
		return nil, fmt.Errorf("parse themes file: %w", err)
	}

	seen := make(map[string]int, len(themes))
	for i, theme := range themes {
		if err := theme.Validate(); err != nil {
			return nil, fmt.Errorf("invalid theme at index %d: %w", i, err)
		}
		if prev, dup := seen[theme.ID]; dup {
			return nil, fmt.Errorf("theme id %q used at index %d and %d", theme.ID, prev, i)
		}
		seen[theme.ID] = i
	}
	return themes, nil
}
