package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/docsask/internal/config"
)

type palette struct {
	accent    lipgloss.Color
	text      lipgloss.Color
	muted     lipgloss.Color
	border    lipgloss.Color
	errorFg   lipgloss.Color
	errorEdge lipgloss.Color
	online    lipgloss.Color
	offline   lipgloss.Color
	pillFocus lipgloss.Color
}

var palettes = map[string]palette{
	config.ThemePaper: {
		accent:    lipgloss.Color("130"),
		text:      lipgloss.Color("236"),
		muted:     lipgloss.Color("101"),
		border:    lipgloss.Color("180"),
		errorFg:   lipgloss.Color("88"),
		errorEdge: lipgloss.Color("160"),
		online:    lipgloss.Color("28"),
		offline:   lipgloss.Color("124"),
		pillFocus: lipgloss.Color("223"),
	},
	config.ThemeDusk: {
		accent:    lipgloss.Color("105"),
		text:      lipgloss.Color("255"),
		muted:     lipgloss.Color("146"),
		border:    lipgloss.Color("61"),
		errorFg:   lipgloss.Color("217"),
		errorEdge: lipgloss.Color("203"),
		online:    lipgloss.Color("78"),
		offline:   lipgloss.Color("203"),
		pillFocus: lipgloss.Color("97"),
	},
}

type styles struct {
	title         lipgloss.Style
	subtitle      lipgloss.Style
	header        lipgloss.Style
	sectionHeader lipgloss.Style
	helper        lipgloss.Style
	composer      lipgloss.Style
	composerBusy  lipgloss.Style
	answerBox     lipgloss.Style
	answerText    lipgloss.Style
	bold          lipgloss.Style
	bullet        lipgloss.Style
	errorBox      lipgloss.Style
	errorTitle    lipgloss.Style
	pill          lipgloss.Style
	pillActive    lipgloss.Style
	pillDisabled  lipgloss.Style
	statusOnline  lipgloss.Style
	statusOffline lipgloss.Style
	statusWaiting lipgloss.Style
	spinner       lipgloss.Style
}

func newStyles(theme string) styles {
	p, ok := palettes[strings.ToLower(strings.TrimSpace(theme))]
	if !ok {
		p = palettes[config.ThemePaper]
	}
	return styles{
		title:         lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		subtitle:      lipgloss.NewStyle().Foreground(p.muted).Italic(true),
		header:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border).Padding(0, 2),
		sectionHeader: lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		helper:        lipgloss.NewStyle().Foreground(p.muted),
		composer:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.accent),
		composerBusy:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.muted).Faint(true),
		answerBox:     lipgloss.NewStyle().Border(lipgloss.ThickBorder(), false, false, false, true).BorderForeground(p.accent).PaddingLeft(2),
		answerText:    lipgloss.NewStyle().Foreground(p.text),
		bold:          lipgloss.NewStyle().Bold(true).Foreground(p.text),
		bullet:        lipgloss.NewStyle().Foreground(p.accent),
		errorBox:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.errorEdge).Foreground(p.errorFg).Padding(0, 1),
		errorTitle:    lipgloss.NewStyle().Bold(true).Foreground(p.errorFg),
		pill:          lipgloss.NewStyle().Foreground(p.accent).Padding(0, 1),
		pillActive:    lipgloss.NewStyle().Bold(true).Foreground(p.accent).Background(p.pillFocus).Padding(0, 1),
		pillDisabled:  lipgloss.NewStyle().Foreground(p.muted).Faint(true).Padding(0, 1),
		statusOnline:  lipgloss.NewStyle().Foreground(p.online),
		statusOffline: lipgloss.NewStyle().Foreground(p.offline),
		statusWaiting: lipgloss.NewStyle().Foreground(p.muted),
		spinner:       lipgloss.NewStyle().Foreground(p.accent),
	}
}
