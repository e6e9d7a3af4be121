// cmd/server/catalog.go
package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/codr1/themeapi/internal/models"
)

// renderCatalog writes every theme with one swatch per color role. Swatch
// text is black or white, whichever contrasts more with the swatch.
func renderCatalog(w io.Writer, themes []models.Theme) error {
	renderer := lipgloss.NewRenderer(w)
	title := renderer.NewStyle().Bold(true)
	muted := renderer.NewStyle().Faint(true)

	for i, theme := range themes {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		var b strings.Builder
		b.WriteString(title.Render(theme.Name))
		b.WriteString(" ")
		b.WriteString(muted.Render("(" + theme.ID + ")"))
		b.WriteString("\n")
		if theme.Description != "" {
			b.WriteString(theme.Description)
			b.WriteString("\n")
		}

		for _, role := range orderedRoles(theme.Colors) {
			b.WriteString(swatch(renderer, role, theme.Colors[role]))
			b.WriteString("\n")
		}

		for _, style := range theme.Typography {
			fmt.Fprintf(&b, "%s: %s %s %gpt\n", style.StyleName, style.FontFamily, style.FontWeight, style.FontSize)
		}

		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func swatch(renderer *lipgloss.Renderer, role string, raw any) string {
	label := fmt.Sprintf("%-20s %v", role, raw)
	value, ok := raw.(string)
	if !ok || !models.IsHexColor(value) {
		return label
	}
	text, _ := models.BestTextColor(value)
	return renderer.NewStyle().
		Background(lipgloss.Color(value)).
		Foreground(lipgloss.Color(text)).
		Padding(0, 1).
		Render(label)
}

// orderedRoles lists the known roles first, in display order, then any
// other keys alphabetically.
func orderedRoles(colors models.Colors) []string {
	roles := make([]string, 0, len(colors))
	known := make(map[string]struct{}, len(models.ColorRoles))
	for _, role := range models.ColorRoles {
		known[role] = struct{}{}
		if _, ok := colors[role]; ok {
			roles = append(roles, role)
		}
	}

	var extra []string
	for role := range colors {
		if _, ok := known[role]; !ok {
			extra = append(extra, role)
		}
	}
	sort.Strings(extra)
	return append(roles, extra...)
}
