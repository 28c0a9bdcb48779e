package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - default dark theme
var (
	Primary = lipgloss.Color("#7C3AED") // Purple
	Accent  = lipgloss.Color("#F59E0B") // Amber

	// Status colors
	Success = lipgloss.Color("#10B981") // Green
	Error   = lipgloss.Color("#EF4444") // Red

	// Checkbox colors
	CheckedColor   = lipgloss.Color("#10B981")
	UncheckedColor = lipgloss.Color("#9CA3AF")

	// Text colors
	TextPrimary = lipgloss.Color("#F9FAFB")
	TextMuted   = lipgloss.Color("#6B7280")

	// Background colors
	BgSecondary = lipgloss.Color("#1F2937")
	BgTertiary  = lipgloss.Color("#374151")

	BorderNormal = lipgloss.Color("#374151")

	ToastSuccessTextColor = lipgloss.Color("#000000")
	ToastErrorTextColor   = lipgloss.Color("#FFFFFF")
)

// Editor styles
var (
	Body = lipgloss.NewStyle().
		Foreground(TextPrimary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	LineNumber = lipgloss.NewStyle().
			Foreground(TextMuted)

	Cursor = lipgloss.NewStyle().
		Reverse(true)

	CheckboxChecked = lipgloss.NewStyle().
			Foreground(CheckedColor).
			Bold(true)

	CheckboxUnchecked = lipgloss.NewStyle().
				Foreground(UncheckedColor)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)
)

// Suggestion popup styles
var (
	Popup = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderNormal).
		Padding(0, 1)

	PopupItem = lipgloss.NewStyle().
			Foreground(TextPrimary)

	PopupSelected = lipgloss.NewStyle().
			Foreground(TextPrimary).
			Background(Primary).
			Bold(true)

	PopupCreate = lipgloss.NewStyle().
			Foreground(Accent).
			Italic(true)
)

// Footer and toast styles
var (
	Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgSecondary)

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
)

// Checkbox renders the widget for a boolean field value.
func Checkbox(checked bool) string {
	if checked {
		return CheckboxChecked.Render("[x]")
	}
	return CheckboxUnchecked.Render("[ ]")
}

// CheckboxWidth is the cell width of a rendered checkbox.
const CheckboxWidth = 3
