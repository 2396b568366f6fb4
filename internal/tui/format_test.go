package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/christophertwo/aella/internal/config"
	"github.com/christophertwo/aella/internal/models"
)

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected unchanged string, got %q", got)
	}
	got := truncate("a rather long project name", 10)
	if ansi.StringWidth(got) != 10 || !strings.HasSuffix(got, config.TruncationSuffix) {
		t.Fatalf("expected 10 cells ending in suffix, got %q", got)
	}
	if got := truncate("anything", 0); got != "" {
		t.Fatalf("expected empty string for zero width, got %q", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("expected padding, got %q", got)
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Fatalf("expected no padding for wider input, got %q", got)
	}
	if got := padRight("日本", 6); ansi.StringWidth(got) != 6 {
		t.Fatalf("expected wide runes to count double, got %q", got)
	}
}

func TestFormatMembers(t *testing.T) {
	tests := []struct {
		members []string
		max     int
		want    string
	}{
		{nil, 3, "no team"},
		{[]string{"Ana", "Luis"}, 3, "Ana, Luis"},
		{[]string{"Ana", "Luis", "Eva", "Sol"}, 3, "Ana, Luis, Eva +1"},
		{[]string{"Ana", "Luis", "Eva", "Sol"}, 0, "Ana, Luis, Eva, Sol"},
	}
	for _, tt := range tests {
		if got := FormatMembers(tt.members, tt.max); got != tt.want {
			t.Fatalf("FormatMembers(%v, %d) = %q, want %q", tt.members, tt.max, got, tt.want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	if got := FormatCount(1, "project"); got != "1 project" {
		t.Fatalf("got %q", got)
	}
	if got := FormatCount(0, "worker"); got != "0 workers" {
		t.Fatalf("got %q", got)
	}
}

func TestNameColumnWidth(t *testing.T) {
	if got := nameColumnWidth(0); got != config.MinNameWidth {
		t.Fatalf("expected min width, got %d", got)
	}
	if got := nameColumnWidth(60); got != 20 {
		t.Fatalf("expected a third of the width, got %d", got)
	}
	if got := nameColumnWidth(300); got != config.TargetNameWidth {
		t.Fatalf("expected target width, got %d", got)
	}
}

func TestResolveThemeFallbacks(t *testing.T) {
	th := ResolveTheme("neon", "Magenta")
	if th.Mode != config.ThemeDark || th.Accent != config.AccentGreen {
		t.Fatalf("expected dark/Green fallback, got %s/%s", th.Mode, th.Accent)
	}
	th = ResolveTheme(config.ThemeLight, config.AccentPurple)
	if th.Mode != config.ThemeLight || th.Accent != config.AccentPurple {
		t.Fatalf("expected light/Purple, got %s/%s", th.Mode, th.Accent)
	}
	if th.Border != accentColors[config.AccentPurple] {
		t.Fatalf("expected accent border color")
	}
}

func TestStatusBadgeUsesLabel(t *testing.T) {
	for _, s := range models.ProjectStatuses {
		if !strings.Contains(StatusBadge(s), s.Label()) {
			t.Fatalf("badge for %s lacks label", s)
		}
	}
}
