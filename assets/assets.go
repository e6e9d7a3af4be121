// Package assets embeds files the server needs at startup.
package assets

import "embed"

// ThemesPath is the seed theme catalog inside ThemesFS.
const ThemesPath = "themes.yaml"

//go:embed themes.yaml
var ThemesFS embed.FS
