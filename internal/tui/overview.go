package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/christophertwo/aella/internal/models"
)

const overviewBarWidth = 30

// OverviewModel is the workspace summary screen.
type OverviewModel struct {
	counts map[models.ProjectStatus]int
	loaded bool
	err    error
}

func (o OverviewModel) withCounts(counts map[models.ProjectStatus]int, err error) OverviewModel {
	o.loaded = true
	o.err = err
	if err == nil {
		o.counts = counts
	}
	return o
}

func (o OverviewModel) total() int {
	n := 0
	for _, c := range o.counts {
		n += c
	}
	return n
}

func (o OverviewModel) View(theme Theme, displayName string, workers, clients int) string {
	var b strings.Builder
	greeting := "Welcome back"
	if displayName != "" {
		greeting = fmt.Sprintf("Welcome back, %s", displayName)
	}
	b.WriteString(theme.Header.Render(greeting) + "\n\n")

	switch {
	case !o.loaded:
		b.WriteString(theme.Dim.Render("Loading workspace...") + "\n")
		return b.String()
	case o.err != nil:
		b.WriteString(theme.Error.Render(fmt.Sprintf("Could not load workspace: %v", o.err)) + "\n")
		return b.String()
	}

	total := o.total()
	b.WriteString(theme.Text.Render(FormatCount(total, "project")) + "\n\n")
	for _, s := range models.ProjectStatuses {
		n := o.counts[s]
		filled := 0
		if total > 0 {
			filled = n * overviewBarWidth / total
		}
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color())).Render(strings.Repeat("█", filled)) +
			theme.Dim.Render(strings.Repeat("░", overviewBarWidth-filled))
		b.WriteString(fmt.Sprintf("%s %s %3d\n", padRight(StatusBadge(s), 12), bar, n))
	}
	b.WriteString("\n" + theme.Dim.Render(fmt.Sprintf("%s  •  %s", FormatCount(workers, "worker"), FormatCount(clients, "client"))) + "\n")
	return b.String()
}
