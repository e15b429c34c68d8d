package render

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title   lipgloss.Style
	Ordinal lipgloss.Style
	Handle  lipgloss.Style
	Name    lipgloss.Style
	Age     lipgloss.Style
	Body    lipgloss.Style
	Likes   lipgloss.Style
	Reposts lipgloss.Style
	Replies lipgloss.Style
	Quotes  lipgloss.Style
	Meta    lipgloss.Style
	Info    lipgloss.Style
	Warn    lipgloss.Style
	Help    lipgloss.Style
	HelpKey lipgloss.Style
	Prompt  lipgloss.Style
}

func Default() Theme {
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpBlue := lipgloss.Color("#89b4fa")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext := lipgloss.Color("#a6adc8")
	cpOverlay := lipgloss.Color("#7f849c")

	return Theme{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		Ordinal: lipgloss.NewStyle().Foreground(cpOverlay),
		Handle:  lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		Name:    lipgloss.NewStyle().Bold(true).Foreground(cpText),
		Age:     lipgloss.NewStyle().Foreground(cpOverlay),
		Body:    lipgloss.NewStyle().Foreground(cpText),
		Likes:   lipgloss.NewStyle().Foreground(cpRed),
		Reposts: lipgloss.NewStyle().Foreground(cpGreen),
		Replies: lipgloss.NewStyle().Foreground(cpBlue),
		Quotes:  lipgloss.NewStyle().Foreground(cpYellow),
		Meta:    lipgloss.NewStyle().Foreground(cpOverlay),
		Info:    lipgloss.NewStyle().Foreground(cpGreen),
		Warn:    lipgloss.NewStyle().Foreground(cpRed),
		Help:    lipgloss.NewStyle().Foreground(cpSubtext),
		HelpKey: lipgloss.NewStyle().Foreground(cpYellow),
		Prompt:  lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
	}
}
