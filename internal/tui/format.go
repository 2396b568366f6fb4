package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/christophertwo/aella/internal/config"
)

// truncate shortens s to width terminal cells, ANSI-aware.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, config.TruncationSuffix)
}

// padRight pads s with spaces to width cells.
func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// FormatMembers joins up to max names and summarizes the rest.
func FormatMembers(members []string, max int) string {
	if len(members) == 0 {
		return "no team"
	}
	if max <= 0 || len(members) <= max {
		return strings.Join(members, ", ")
	}
	return fmt.Sprintf("%s +%d", strings.Join(members[:max], ", "), len(members)-max)
}

// FormatCount pluralizes a noun.
func FormatCount(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// nameColumnWidth picks the project name column for the terminal width.
func nameColumnWidth(total int) int {
	w := total / 3
	if w > config.TargetNameWidth {
		w = config.TargetNameWidth
	}
	if w < config.MinNameWidth {
		w = config.MinNameWidth
	}
	return w
}
