package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vistapra/content-hub-go/internal/content"
)

// Chrome colors stay adaptive so the editor reads on light and dark
// terminals; only the accents follow the loaded theme.
func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorControlBg  lipgloss.TerminalColor = ac("252", "235")
	colorDanger     lipgloss.TerminalColor = ac("160", "196")
)

// styles holds every lipgloss style the editor renders with. The accent
// colors come from the loaded theme, so edits to the theme screen are
// visible immediately in the editor chrome itself.
type styles struct {
	title    lipgloss.Style
	crumb    lipgloss.Style
	selected lipgloss.Style
	row      lipgloss.Style
	label    lipgloss.Style
	muted    lipgloss.Style
	readOnly lipgloss.Style
	group    lipgloss.Style
	status   lipgloss.Style
	danger   lipgloss.Style
	btn      lipgloss.Style
	btnFocus lipgloss.Style
	modal    lipgloss.Style
}

func newStyles(theme content.Theme) styles {
	accent := lipgloss.Color(theme.PrimaryColor)
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		crumb:    lipgloss.NewStyle().Foreground(colorMuted),
		selected: lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg).Bold(true),
		row:      lipgloss.NewStyle(),
		label:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.SecondaryColor)),
		muted:    lipgloss.NewStyle().Foreground(colorMuted),
		readOnly: lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
		group:    lipgloss.NewStyle().Bold(true),
		status:   lipgloss.NewStyle().Foreground(colorMuted),
		danger:   lipgloss.NewStyle().Foreground(colorDanger),
		btn:      lipgloss.NewStyle().Padding(0, 1).Background(colorControlBg),
		btnFocus: lipgloss.NewStyle().Padding(0, 1).Background(colorSelectedBg).Foreground(colorSelectedFg).Bold(true),
		modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2),
	}
}

// swatch renders a small color block for color fields. Invalid values
// render as a placeholder rather than a black block.
func swatch(hex string) string {
	if len(hex) == 0 || hex[0] != '#' {
		return "   "
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("   ")
}
