package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/christophertwo/aella/internal/config"
)

const sliderWidth = 20

// SettingsDialog renders and edits a list of SettingItems. It never
// touches Preferences directly; every edit is returned as a command
// carrying the item's change message. Edits copy the item slice, so
// earlier dialog values are unaffected.
type SettingsDialog struct {
	items   []SettingItem
	cursor  int
	editing bool
	input   textinput.Model
}

func NewSettingsDialog(items []SettingItem) SettingsDialog {
	ti := textinput.New()
	ti.Width = 30
	return SettingsDialog{items: items, input: ti}
}

// buildSettingsItems lays out the dialog rows for p.
func buildSettingsItems(p Preferences) []SettingItem {
	return []SettingItem{
		ChoiceSetting{
			ID:       config.PrefTheme,
			Title:    "Theme",
			Options:  ThemeModes,
			Selected: indexOf(ThemeModes, p.Theme),
			OnChange: func(v string) tea.Msg { return themeModeChangedMsg{mode: v} },
		},
		ChoiceSetting{
			ID:       config.PrefThemeColor,
			Title:    "Accent color",
			Options:  AccentNames,
			Selected: indexOf(AccentNames, p.Accent),
			OnChange: func(v string) tea.Msg { return accentChangedMsg{accent: v} },
		},
		TextSetting{
			ID:          config.PrefDisplayName,
			Title:       "Display name",
			Value:       p.DisplayName,
			Placeholder: "Your name",
			MaxLen:      config.MaxDisplayNameLength,
			OnChange:    func(v string) tea.Msg { return displayNameChangedMsg{name: v} },
		},
		ToggleSetting{
			ID:       config.PrefShowDescriptions,
			Title:    "Show descriptions",
			Value:    p.ShowDescriptions,
			OnChange: func(v bool) tea.Msg { return showDescriptionsChangedMsg{show: v} },
		},
		SliderSetting{
			ID:    config.PrefSearchDelayMS,
			Title: "Search delay",
			Value: int(p.SearchDelay.Milliseconds()),
			Min:   int(config.MinSearchDebounce.Milliseconds()),
			Max:   int(config.MaxSearchDebounce.Milliseconds()),
			Step:  int(config.SearchDebounceStep.Milliseconds()),
			Unit:  "ms",
			OnChange: func(v int) tea.Msg {
				return searchDelayChangedMsg{delay: time.Duration(v) * time.Millisecond}
			},
		},
	}
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return 0
}

func (d SettingsDialog) Items() []SettingItem {
	return d.items
}

func (d SettingsDialog) Cursor() int {
	return d.cursor
}

func (d SettingsDialog) Editing() bool {
	return d.editing
}

func (d SettingsDialog) Update(msg tea.KeyMsg) (SettingsDialog, tea.Cmd) {
	if d.editing {
		return d.updateEditing(msg)
	}
	switch msg.String() {
	case "esc", "q":
		return d, closeSettings(false)
	case "ctrl+s", "s":
		return d, closeSettings(true)
	case "R":
		return d, func() tea.Msg { return settingsResetRequestedMsg{} }
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
		return d, nil
	case "down", "j", "tab":
		if d.cursor < len(d.items)-1 {
			d.cursor++
		}
		return d, nil
	case "left", "h":
		return d.adjust(-1)
	case "right", "l":
		return d.adjust(1)
	case "enter", " ":
		return d.activate()
	}
	return d, nil
}

func closeSettings(save bool) tea.Cmd {
	return func() tea.Msg { return settingsClosedMsg{save: save} }
}

func (d SettingsDialog) adjust(delta int) (SettingsDialog, tea.Cmd) {
	if d.cursor >= len(d.items) {
		return d, nil
	}
	d.items = slices.Clone(d.items)
	var cmd tea.Cmd
	switch it := d.items[d.cursor].(type) {
	case ChoiceSetting:
		d.items[d.cursor], cmd = it.Cycle(delta)
	case SliderSetting:
		d.items[d.cursor], cmd = it.Nudge(delta)
	case ToggleSetting:
		if (delta > 0) != it.Value {
			d.items[d.cursor], cmd = it.Toggle()
		}
	case TextSetting:
	}
	return d, cmd
}

func (d SettingsDialog) activate() (SettingsDialog, tea.Cmd) {
	if d.cursor >= len(d.items) {
		return d, nil
	}
	d.items = slices.Clone(d.items)
	var cmd tea.Cmd
	switch it := d.items[d.cursor].(type) {
	case ChoiceSetting:
		d.items[d.cursor], cmd = it.Cycle(1)
	case ToggleSetting:
		d.items[d.cursor], cmd = it.Toggle()
	case TextSetting:
		d.editing = true
		d.input.CharLimit = it.MaxLen
		d.input.Placeholder = it.Placeholder
		d.input.SetValue(it.Value)
		d.input.CursorEnd()
		cmd = d.input.Focus()
	case SliderSetting:
		d.items[d.cursor], cmd = it.Nudge(1)
	}
	return d, cmd
}

func (d SettingsDialog) updateEditing(msg tea.KeyMsg) (SettingsDialog, tea.Cmd) {
	switch msg.String() {
	case "esc":
		d.editing = false
		d.input.Blur()
		return d, nil
	case "enter":
		d.editing = false
		d.input.Blur()
		it, ok := d.items[d.cursor].(TextSetting)
		if !ok {
			return d, nil
		}
		var cmd tea.Cmd
		d.items = slices.Clone(d.items)
		d.items[d.cursor], cmd = it.Commit(strings.TrimSpace(d.input.Value()))
		return d, cmd
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

func (d SettingsDialog) View(theme Theme) string {
	var b strings.Builder
	b.WriteString(theme.Header.Render("Settings") + "\n\n")
	for i, item := range d.items {
		label := padRight(item.Label(), 20)
		value := d.renderValue(theme, i, item)
		if i == d.cursor {
			b.WriteString(theme.Focused.Render("> "+label) + value + "\n")
		} else {
			b.WriteString("  " + theme.Text.Render(label) + value + "\n")
		}
	}
	b.WriteString("\n")
	if d.editing {
		b.WriteString(theme.Dim.Render("enter apply • esc cancel"))
	} else {
		b.WriteString(theme.Dim.Render("↑/↓ move • ←/→ change • enter edit • s save • R defaults • esc discard"))
	}
	return theme.Dialog.Render(b.String())
}

func (d SettingsDialog) renderValue(theme Theme, i int, item SettingItem) string {
	switch it := item.(type) {
	case ChoiceSetting:
		parts := make([]string, len(it.Options))
		for j, opt := range it.Options {
			if j == it.Selected {
				parts[j] = theme.Highlight.Render("[" + opt + "]")
			} else {
				parts[j] = theme.Dim.Render(" " + opt + " ")
			}
		}
		return strings.Join(parts, " ")
	case ToggleSetting:
		if it.Value {
			return theme.Highlight.Render("[x] on")
		}
		return theme.Dim.Render("[ ] off")
	case TextSetting:
		if d.editing && i == d.cursor {
			return d.input.View()
		}
		if it.Value == "" {
			return theme.Dim.Render(it.Placeholder)
		}
		return theme.Text.Render(it.Value)
	case SliderSetting:
		return renderSlider(theme, it)
	default:
		panic(fmt.Sprintf("tui: unknown setting item %T", item))
	}
}

func renderSlider(theme Theme, s SliderSetting) string {
	filled := 0
	if s.Max > s.Min {
		filled = (s.Value - s.Min) * sliderWidth / (s.Max - s.Min)
	}
	filled = max(0, min(filled, sliderWidth))
	bar := theme.Highlight.Render(strings.Repeat("━", filled)) +
		theme.Dim.Render(strings.Repeat("─", sliderWidth-filled))
	return fmt.Sprintf("%s %d %s", bar, s.Value, s.Unit)
}
