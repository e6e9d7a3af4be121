package models

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Swatch text only needs to be legible on a solid block, so we use the AA large-text threshold.
const wcagAAMinContrastRatio = 3.0
const darkTextColor = "#000000"
const lightTextColor = "#FFFFFF"

const (
	previewTemplate    = "https://dummyimage.com/300x200/%s/FFFFFF&text=%s"
	fallbackPreviewHex = "4B39EF"
)

// Color roles understood by clients. Colors may carry other keys as well.
const (
	ColorPrimary             = "primary"
	ColorSecondary           = "secondary"
	ColorTertiary            = "tertiary"
	ColorPrimaryBackground   = "primaryBackground"
	ColorSecondaryBackground = "secondaryBackground"
	ColorPrimaryText         = "primaryText"
	ColorSecondaryText       = "secondaryText"
	ColorAlternate           = "alternate"
	ColorAccent1             = "accent1"
	ColorAccent2             = "accent2"
	ColorAccent3             = "accent3"
	ColorSuccess             = "success"
	ColorWarning             = "warning"
	ColorError               = "error"
	ColorInfo                = "info"
)

// ColorRoles lists the known roles in display order.
var ColorRoles = []string{
	ColorPrimary,
	ColorSecondary,
	ColorTertiary,
	ColorPrimaryBackground,
	ColorSecondaryBackground,
	ColorPrimaryText,
	ColorSecondaryText,
	ColorAlternate,
	ColorAccent1,
	ColorAccent2,
	ColorAccent3,
	ColorSuccess,
	ColorWarning,
	ColorError,
	ColorInfo,
}

// Letter spacing units.
const (
	UnitPercent = "PERCENT"
	UnitPixels  = "PIXELS"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// component encoding leaves these untouched, url.QueryEscape does not
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func IsHexColor(value string) bool {
	return hexColorRegex.MatchString(strings.TrimSpace(value))
}

// Colors maps a color role to a color value. Values are kept as decoded and
// are usually hex strings. A nil Colors means "absent"; an empty non-nil map
// is present.
type Colors map[string]any

func (c Colors) Clone() Colors {
	if c == nil {
		return nil
	}
	out := make(Colors, len(c))
	for k, v := range c {
		out[k] = cloneValue(v)
	}
	return out
}

// String returns the value for role when it is a string.
func (c Colors) String(role string) (string, bool) {
	value, ok := c[role].(string)
	return value, ok
}

func cloneValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(value))
		for k, nested := range value {
			out[k] = cloneValue(nested)
		}
		return out
	case []any:
		out := make([]any, len(value))
		for i, nested := range value {
			out[i] = cloneValue(nested)
		}
		return out
	default:
		return v
	}
}

type LetterSpacing struct {
	Value float64 `json:"value" yaml:"value"`
	Unit  string  `json:"unit" yaml:"unit"`
}

type TypeStyle struct {
	StyleName     string        `json:"styleName" yaml:"styleName"`
	FontFamily    string        `json:"fontFamily" yaml:"fontFamily"`
	FontWeight    string        `json:"fontWeight" yaml:"fontWeight"`
	FontSize      float64       `json:"fontSize" yaml:"fontSize"`
	LetterSpacing LetterSpacing `json:"letterSpacing" yaml:"letterSpacing"`
}

type Theme struct {
	ID           string      `json:"id" yaml:"id"`
	Name         string      `json:"name" yaml:"name"`
	Description  string      `json:"description" yaml:"description"`
	Colors       Colors      `json:"colors" yaml:"colors"`
	Typography   []TypeStyle `json:"typography,omitempty" yaml:"typography,omitempty"`
	PreviewImage string      `json:"previewImage" yaml:"previewImage"`
}

// Summary is the reduced projection returned by list endpoints.
type Summary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	PreviewImage string `json:"previewImage"`
}

func (t Theme) Summary() Summary {
	return Summary{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		PreviewImage: t.PreviewImage,
	}
}

// Clone returns a copy that shares no mutable state with t.
func (t Theme) Clone() Theme {
	out := t
	out.Colors = t.Colors.Clone()
	if t.Typography != nil {
		out.Typography = append([]TypeStyle(nil), t.Typography...)
	}
	return out
}

// Validate checks the presence rules every stored theme must satisfy.
func (t Theme) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("name is required")
	}
	if t.Colors == nil {
		return fmt.Errorf("colors are required")
	}
	for i, style := range t.Typography {
		switch style.LetterSpacing.Unit {
		case UnitPercent, UnitPixels:
		default:
			return fmt.Errorf("typography[%d] letter spacing unit must be %s or %s", i, UnitPercent, UnitPixels)
		}
	}
	return nil
}

// NewTheme carries the caller-supplied fields of a theme about to be created.
type NewTheme struct {
	Name         string
	Description  string
	Colors       Colors
	PreviewImage string
}

// ThemePatch is a partial update. Only fields with Set=true were supplied.
type ThemePatch struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
	Colors      Optional[Colors] `json:"colors"`
}

// DerivePreview builds the placeholder preview URL for a theme. A primary
// color that is not a string falls back like a missing one.
func DerivePreview(colors Colors, name string) string {
	primary, _ := colors.String(ColorPrimary)
	hex := strings.TrimPrefix(primary, "#")
	if hex == "" {
		hex = fallbackPreviewHex
	}
	return fmt.Sprintf(previewTemplate, hex, EncodeURIComponent(name))
}

// EncodeURIComponent escapes s the way browsers escape a URI component:
// everything but A-Z a-z 0-9 - _ . ! ~ * ' ( ) is percent-encoded.
func EncodeURIComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// BestTextColor picks black or white, whichever contrasts more with
// backgroundColor. ok is false when backgroundColor is not a 6-digit hex
// color or neither choice reaches the AA large-text ratio.
func BestTextColor(backgroundColor string) (string, bool) {
	textColors := []string{darkTextColor, lightTextColor}
	bestRatio := 0.0
	bestText := ""
	for _, textColor := range textColors {
		ratio, err := contrastRatio(textColor, backgroundColor)
		if err != nil {
			return "", false
		}
		if ratio > bestRatio {
			bestRatio = ratio
			bestText = textColor
		}
	}
	return bestText, bestRatio >= wcagAAMinContrastRatio
}

func contrastRatio(textColor, backgroundColor string) (float64, error) {
	textL, err := relativeLuminance(textColor)
	if err != nil {
		return 0, err
	}
	backgroundL, err := relativeLuminance(backgroundColor)
	if err != nil {
		return 0, err
	}
	lightest := math.Max(textL, backgroundL)
	darkest := math.Min(textL, backgroundL)
	return (lightest + 0.05) / (darkest + 0.05), nil
}

func relativeLuminance(hexColor string) (float64, error) {
	r, g, b, err := parseHexColor(hexColor)
	if err != nil {
		return 0, err
	}

	rl := srgbToLinear(r)
	gl := srgbToLinear(g)
	bl := srgbToLinear(b)

	return 0.2126*rl + 0.7152*gl + 0.0722*bl, nil
}

func parseHexColor(hexColor string) (float64, float64, float64, error) {
	if !hexColorRegex.MatchString(hexColor) {
		return 0, 0, 0, fmt.Errorf("invalid hex color: %s", hexColor)
	}

	hex := strings.TrimPrefix(hexColor, "#")
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color: %s", hexColor)
	}

	r := float64((value >> 16) & 0xFF)
	g := float64((value >> 8) & 0xFF)
	b := float64(value & 0xFF)

	return r / 255, g / 255, b / 255, nil
}

func srgbToLinear(value float64) float64 {
	if value <= 0.03928 {
		return value / 12.92
	}
	return math.Pow((value+0.055)/1.055, 2.4)
}
