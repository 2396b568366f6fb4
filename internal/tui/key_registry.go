package tui

import (
	"sort"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyHandler reacts to a bound key. handled=false lets lower priority
// bindings for the same key run.
type KeyHandler func(m MainModel, msg tea.KeyMsg) (next MainModel, cmd tea.Cmd, handled bool)

type KeyBinding struct {
	Binding  key.Binding
	Handler  KeyHandler
	Screens  []Screen
	Priority int
}

func (b KeyBinding) AppliesTo(s Screen) bool {
	if len(b.Screens) == 0 {
		return true
	}
	for _, v := range b.Screens {
		if v == s {
			return true
		}
	}
	return false
}

type HandlerRegistry struct {
	bindings []KeyBinding
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{}
}

func (r *HandlerRegistry) Register(b KeyBinding) {
	r.bindings = append(r.bindings, b)
	sort.SliceStable(r.bindings, func(i, j int) bool {
		return r.bindings[i].Priority > r.bindings[j].Priority
	})
}

func (r *HandlerRegistry) Handle(m MainModel, msg tea.KeyMsg) (MainModel, tea.Cmd, bool) {
	for _, b := range r.bindings {
		if !b.AppliesTo(m.screen) || !b.Binding.Enabled() || !key.Matches(msg, b.Binding) {
			continue
		}
		next, cmd, handled := b.Handler(m, msg)
		if handled {
			return next, cmd, true
		}
	}
	return m, nil, false
}

// HelpForScreen lists the documented bindings active on s, one per help
// label.
func (r *HandlerRegistry) HelpForScreen(s Screen) []key.Binding {
	seen := make(map[string]bool)
	var out []key.Binding
	for _, b := range r.bindings {
		h := b.Binding.Help()
		if !b.AppliesTo(s) || h.Desc == "" || seen[h.Key] {
			continue
		}
		seen[h.Key] = true
		out = append(out, b.Binding)
	}
	return out
}
