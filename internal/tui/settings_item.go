package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// SettingItem is one row of the settings dialog. The set of variants is
// closed: ChoiceSetting, ToggleSetting, TextSetting and SliderSetting.
// Items never mutate preferences themselves; a change is reported as the
// tea.Msg built by the item's OnChange.
type SettingItem interface {
	Key() string
	Label() string
	settingItem()
}

// ChoiceSetting picks one of a fixed list of options.
type ChoiceSetting struct {
	ID       string
	Title    string
	Options  []string
	Selected int
	OnChange func(string) tea.Msg
}

func (s ChoiceSetting) Key() string   { return s.ID }
func (s ChoiceSetting) Label() string { return s.Title }
func (ChoiceSetting) settingItem()    {}

func (s ChoiceSetting) Value() string {
	if s.Selected < 0 || s.Selected >= len(s.Options) {
		return ""
	}
	return s.Options[s.Selected]
}

// Cycle moves the selection by delta, wrapping.
func (s ChoiceSetting) Cycle(delta int) (ChoiceSetting, tea.Cmd) {
	n := len(s.Options)
	if n == 0 {
		return s, nil
	}
	s.Selected = ((s.Selected+delta)%n + n) % n
	return s, emit(s.OnChange, s.Value())
}

// ToggleSetting is an on/off switch.
type ToggleSetting struct {
	ID       string
	Title    string
	Value    bool
	OnChange func(bool) tea.Msg
}

func (s ToggleSetting) Key() string   { return s.ID }
func (s ToggleSetting) Label() string { return s.Title }
func (ToggleSetting) settingItem()    {}

func (s ToggleSetting) Toggle() (ToggleSetting, tea.Cmd) {
	s.Value = !s.Value
	return s, emit(s.OnChange, s.Value)
}

// TextSetting is free text edited inline.
type TextSetting struct {
	ID          string
	Title       string
	Value       string
	Placeholder string
	MaxLen      int
	OnChange    func(string) tea.Msg
}

func (s TextSetting) Key() string   { return s.ID }
func (s TextSetting) Label() string { return s.Title }
func (TextSetting) settingItem()    {}

func (s TextSetting) Commit(v string) (TextSetting, tea.Cmd) {
	if s.MaxLen > 0 && len([]rune(v)) > s.MaxLen {
		v = string([]rune(v)[:s.MaxLen])
	}
	s.Value = v
	return s, emit(s.OnChange, v)
}

// SliderSetting is an integer in [Min, Max] moved in Step increments.
type SliderSetting struct {
	ID       string
	Title    string
	Value    int
	Min      int
	Max      int
	Step     int
	Unit     string
	OnChange func(int) tea.Msg
}

func (s SliderSetting) Key() string   { return s.ID }
func (s SliderSetting) Label() string { return s.Title }
func (SliderSetting) settingItem()    {}

// Nudge moves the value by delta steps, clamped to the range. No message
// is emitted when the value does not change.
func (s SliderSetting) Nudge(delta int) (SliderSetting, tea.Cmd) {
	step := s.Step
	if step <= 0 {
		step = 1
	}
	next := s.Value + delta*step
	if next < s.Min {
		next = s.Min
	}
	if next > s.Max {
		next = s.Max
	}
	if next == s.Value {
		return s, nil
	}
	s.Value = next
	return s, emit(s.OnChange, next)
}

// Positions is the number of stops on the slider.
func (s SliderSetting) Positions() int {
	if s.Step <= 0 || s.Max < s.Min {
		return 1
	}
	return (s.Max-s.Min)/s.Step + 1
}

func emit[T any](fn func(T) tea.Msg, v T) tea.Cmd {
	if fn == nil {
		return nil
	}
	return func() tea.Msg { return fn(v) }
}
