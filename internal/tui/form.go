package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type FormFieldSpec struct {
	Label       string
	Placeholder string
	CharLimit   int
	Required    bool
}

type formResult int

const (
	formPending formResult = iota
	formSubmitted
	formCancelled
)

// FormModel is a vertical stack of text inputs used by the add dialogs.
type FormModel struct {
	Title  string
	specs  []FormFieldSpec
	inputs []textinput.Model
	focus  int
	err    string
}

func NewFormModel(title string, specs ...FormFieldSpec) FormModel {
	inputs := make([]textinput.Model, len(specs))
	for i, spec := range specs {
		ti := textinput.New()
		ti.Placeholder = spec.Placeholder
		ti.CharLimit = spec.CharLimit
		ti.Width = 40
		inputs[i] = ti
	}
	f := FormModel{Title: title, specs: specs, inputs: inputs}
	if len(inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

// Values returns the trimmed field values in declaration order.
func (f FormModel) Values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = strings.TrimSpace(in.Value())
	}
	return out
}

func (f *FormModel) SetValue(i int, v string) {
	if i >= 0 && i < len(f.inputs) {
		f.inputs[i].SetValue(v)
	}
}

func (f FormModel) Focused() int {
	return f.focus
}

func (f FormModel) validate() string {
	values := f.Values()
	for i, spec := range f.specs {
		if spec.Required && values[i] == "" {
			return fmt.Sprintf("%s is required", spec.Label)
		}
	}
	return ""
}

func (f *FormModel) moveFocus(delta int) {
	if len(f.inputs) == 0 {
		return
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f FormModel) Update(msg tea.KeyMsg) (FormModel, formResult, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return f, formCancelled, nil
	case "tab", "down":
		f.moveFocus(1)
		return f, formPending, nil
	case "shift+tab", "up":
		f.moveFocus(-1)
		return f, formPending, nil
	case "enter":
		if f.focus < len(f.inputs)-1 {
			f.moveFocus(1)
			return f, formPending, nil
		}
		if problem := f.validate(); problem != "" {
			f.err = problem
			return f, formPending, nil
		}
		return f, formSubmitted, nil
	}
	if len(f.inputs) == 0 {
		return f, formPending, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	f.err = ""
	return f, formPending, cmd
}

func (f FormModel) View(theme Theme) string {
	var b strings.Builder
	b.WriteString(theme.Header.Render(f.Title) + "\n\n")
	for i, spec := range f.specs {
		label := spec.Label
		if spec.Required {
			label += " *"
		}
		style := theme.Dim
		if i == f.focus {
			style = theme.Focused
		}
		b.WriteString(style.Render(label) + "\n")
		b.WriteString(f.inputs[i].View() + "\n\n")
	}
	if f.err != "" {
		b.WriteString(theme.Error.Render(f.err) + "\n")
	}
	b.WriteString(theme.Dim.Render("tab next • enter save • esc cancel"))
	return theme.Dialog.Render(b.String())
}
