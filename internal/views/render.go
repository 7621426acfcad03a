package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header       string
	StatsLine    string
	Body         string
	PaletteView  string
	HelpView     string
	Notification string
	StatusText   string
	StatusError  bool
	FooterHint   string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statsStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func RenderApp(data AppData) string {
	lines := []string{
		headerStyle.Render(data.Header),
		statsStyle.Render(data.StatsLine),
		panelStyle.Width(58).Render(data.Body),
	}
	if data.PaletteView != "" {
		lines = append(lines, panelStyle.Render(data.PaletteView))
	}
	if data.HelpView != "" {
		lines = append(lines, panelStyle.Render(data.HelpView))
	}
	if data.Notification != "" {
		lines = append(lines, data.Notification)
	}
	if data.StatusText != "" {
		status := statusStyle.Render(data.StatusText)
		if data.StatusError {
			status = errorStyle.Render(data.StatusText)
		}
		lines = append(lines, status)
	}
	if data.FooterHint != "" {
		lines = append(lines, footerStyle.Render(data.FooterHint))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
