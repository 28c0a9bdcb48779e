package styles

import (
	"regexp"
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// themeMu protects access to themeRegistry and currentTheme for thread safety
var themeMu sync.RWMutex

// hexColorRegex validates hex color codes (#RRGGBB or #RRGGBBAA with alpha)
var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}([0-9A-Fa-f]{2})?$`)

// ColorPalette holds all theme colors.
type ColorPalette struct {
	Primary   string `json:"primary"`
	Accent    string `json:"accent"`
	Success   string `json:"success"`
	Error     string `json:"error"`
	Checked   string `json:"checked"`
	Unchecked string `json:"unchecked"`

	TextPrimary string `json:"textPrimary"`
	TextMuted   string `json:"textMuted"`
	BgSecondary string `json:"bgSecondary"`
	BgTertiary  string `json:"bgTertiary"`
	Border      string `json:"border"`

	ToastSuccessText string `json:"toastSuccessText"`
	ToastErrorText   string `json:"toastErrorText"`
}

// Theme is a named palette.
type Theme struct {
	Name   string
	Colors ColorPalette
}

// DefaultTheme is the dark theme.
var DefaultTheme = Theme{
	Name: "default",
	Colors: ColorPalette{
		Primary:          "#7C3AED",
		Accent:           "#F59E0B",
		Success:          "#10B981",
		Error:            "#EF4444",
		Checked:          "#10B981",
		Unchecked:        "#9CA3AF",
		TextPrimary:      "#F9FAFB",
		TextMuted:        "#6B7280",
		BgSecondary:      "#1F2937",
		BgTertiary:       "#374151",
		Border:           "#374151",
		ToastSuccessText: "#000000",
		ToastErrorText:   "#FFFFFF",
	},
}

// LightTheme suits light terminal backgrounds.
var LightTheme = Theme{
	Name: "light",
	Colors: ColorPalette{
		Primary:          "#6D28D9",
		Accent:           "#B45309",
		Success:          "#047857",
		Error:            "#B91C1C",
		Checked:          "#047857",
		Unchecked:        "#4B5563",
		TextPrimary:      "#111827",
		TextMuted:        "#6B7280",
		BgSecondary:      "#E5E7EB",
		BgTertiary:       "#D1D5DB",
		Border:           "#9CA3AF",
		ToastSuccessText: "#FFFFFF",
		ToastErrorText:   "#FFFFFF",
	},
}

var themeRegistry = map[string]Theme{
	DefaultTheme.Name: DefaultTheme,
	LightTheme.Name:   LightTheme,
}

// currentTheme tracks the active theme name
var currentTheme = "default"

// IsValidHexColor checks if a string is a valid hex color code (#RRGGBB or #RRGGBBAA)
func IsValidHexColor(hex string) bool {
	return hexColorRegex.MatchString(hex)
}

// IsValidTheme checks if a theme name exists in the registry
func IsValidTheme(name string) bool {
	themeMu.RLock()
	defer themeMu.RUnlock()
	_, ok := themeRegistry[name]
	return ok
}

// GetTheme returns a theme by name, or the default theme if not found
func GetTheme(name string) Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	if theme, ok := themeRegistry[name]; ok {
		return theme
	}
	return DefaultTheme
}

// GetCurrentThemeName returns the name of the currently active theme
func GetCurrentThemeName() string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// ListThemes returns the names of all available themes in sorted order
func ListThemes() []string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	names := make([]string, 0, len(themeRegistry))
	for name := range themeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyTheme applies a theme by name, updating all style variables
func ApplyTheme(name string) {
	ApplyThemeWithOverrides(name, nil)
}

// ApplyThemeWithOverrides applies a theme with color overrides from config.
// Overrides with invalid hex values are ignored.
func ApplyThemeWithOverrides(name string, overrides map[string]string) {
	theme := GetTheme(name)
	applyOverrides(&theme.Colors, overrides)
	ApplyThemeColors(theme)

	themeMu.Lock()
	currentTheme = theme.Name
	themeMu.Unlock()
}

func applyOverrides(p *ColorPalette, overrides map[string]string) {
	for key, value := range overrides {
		if !IsValidHexColor(value) {
			continue
		}
		switch key {
		case "primary":
			p.Primary = value
		case "accent":
			p.Accent = value
		case "success":
			p.Success = value
		case "error":
			p.Error = value
		case "checked":
			p.Checked = value
		case "unchecked":
			p.Unchecked = value
		case "textPrimary":
			p.TextPrimary = value
		case "textMuted":
			p.TextMuted = value
		case "bgSecondary":
			p.BgSecondary = value
		case "bgTertiary":
			p.BgTertiary = value
		case "border":
			p.Border = value
		}
	}
}

// ApplyThemeColors sets the palette variables and rebuilds styles.
func ApplyThemeColors(theme Theme) {
	c := theme.Colors
	Primary = lipgloss.Color(c.Primary)
	Accent = lipgloss.Color(c.Accent)
	Success = lipgloss.Color(c.Success)
	Error = lipgloss.Color(c.Error)
	CheckedColor = lipgloss.Color(c.Checked)
	UncheckedColor = lipgloss.Color(c.Unchecked)
	TextPrimary = lipgloss.Color(c.TextPrimary)
	TextMuted = lipgloss.Color(c.TextMuted)
	BgSecondary = lipgloss.Color(c.BgSecondary)
	BgTertiary = lipgloss.Color(c.BgTertiary)
	BorderNormal = lipgloss.Color(c.Border)
	ToastSuccessTextColor = lipgloss.Color(c.ToastSuccessText)
	ToastErrorTextColor = lipgloss.Color(c.ToastErrorText)

	rebuildStyles()
}

// rebuildStyles recreates all lipgloss styles with current colors
func rebuildStyles() {
	Body = lipgloss.NewStyle().Foreground(TextPrimary)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)
	LineNumber = lipgloss.NewStyle().Foreground(TextMuted)
	CheckboxChecked = lipgloss.NewStyle().Foreground(CheckedColor).Bold(true)
	CheckboxUnchecked = lipgloss.NewStyle().Foreground(UncheckedColor)
	Title = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)

	Popup = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderNormal).
		Padding(0, 1)
	PopupItem = lipgloss.NewStyle().Foreground(TextPrimary)
	PopupSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Primary).
		Bold(true)
	PopupCreate = lipgloss.NewStyle().Foreground(Accent).Italic(true)

	Footer = lipgloss.NewStyle().Foreground(TextMuted).Background(BgSecondary)
	KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)
	ToastSuccess = lipgloss.NewStyle().
		Foreground(ToastSuccessTextColor).
		Background(Success).
		Padding(0, 1)
	ToastError = lipgloss.NewStyle().
		Foreground(ToastErrorTextColor).
		Background(Error).
		Padding(0, 1)
}
