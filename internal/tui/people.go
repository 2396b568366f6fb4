package tui

import (
	"fmt"
	"strings"

	"github.com/christophertwo/aella/internal/config"
	"github.com/christophertwo/aella/internal/models"
	"github.com/christophertwo/aella/internal/util"
)

// WorkersModel is the worker directory screen.
type WorkersModel struct {
	items    []models.Worker
	loaded   bool
	err      error
	cursor   int
	form     *FormModel
	deleting *models.Worker
}

func (w WorkersModel) inputActive() bool {
	return w.form != nil || w.deleting != nil
}

func (w WorkersModel) withItems(items []models.Worker, err error) WorkersModel {
	w.loaded = true
	w.err = err
	if err == nil {
		w.items = items
	}
	w.cursor = util.Clamp(w.cursor, 0, max(len(w.items)-1, 0))
	return w
}

func (w WorkersModel) selected() (models.Worker, bool) {
	if w.cursor < 0 || w.cursor >= len(w.items) {
		return models.Worker{}, false
	}
	return w.items[w.cursor], true
}

func newWorkerForm() FormModel {
	return NewFormModel("New worker",
		FormFieldSpec{Label: "Name", Placeholder: "Ana Torres", CharLimit: config.MaxNameLength, Required: true},
		FormFieldSpec{Label: "Role", Placeholder: "Designer", CharLimit: config.MaxNameLength},
		FormFieldSpec{Label: "Email", Placeholder: "ana@example.com", CharLimit: config.MaxEmailLength},
	)
}

func workerFromForm(values []string) models.Worker {
	return models.Worker{Name: values[0], Role: values[1], Email: values[2]}
}

func (w WorkersModel) View(theme Theme, width int) string {
	if w.form != nil {
		return w.form.View(theme)
	}
	rows := make([]string, len(w.items))
	for i, wk := range w.items {
		rows[i] = fmt.Sprintf("%s  %s  %s",
			padRight(truncate(wk.Name, nameColumnWidth(width)), nameColumnWidth(width)),
			padRight(truncate(wk.Role, 16), 16),
			wk.Email)
	}
	out := renderDirectory(theme, "workers", w.loaded, w.err, rows, w.cursor)
	if w.deleting != nil {
		out += theme.Error.Render(fmt.Sprintf("Remove %q? [y/N]", w.deleting.Name)) + "\n"
	}
	return out
}

// ClientsModel is the client directory screen.
type ClientsModel struct {
	items    []models.Client
	loaded   bool
	err      error
	cursor   int
	form     *FormModel
	deleting *models.Client
}

func (c ClientsModel) inputActive() bool {
	return c.form != nil || c.deleting != nil
}

func (c ClientsModel) withItems(items []models.Client, err error) ClientsModel {
	c.loaded = true
	c.err = err
	if err == nil {
		c.items = items
	}
	c.cursor = util.Clamp(c.cursor, 0, max(len(c.items)-1, 0))
	return c
}

func (c ClientsModel) selected() (models.Client, bool) {
	if c.cursor < 0 || c.cursor >= len(c.items) {
		return models.Client{}, false
	}
	return c.items[c.cursor], true
}

func newClientForm() FormModel {
	return NewFormModel("New client",
		FormFieldSpec{Label: "Name", Placeholder: "Acme Corp", CharLimit: config.MaxNameLength, Required: true},
		FormFieldSpec{Label: "Email", Placeholder: "ops@acme.test", CharLimit: config.MaxEmailLength},
		FormFieldSpec{Label: "Phone", Placeholder: "555-0100", CharLimit: 32},
	)
}

func clientFromForm(values []string) models.Client {
	return models.Client{Name: values[0], Email: values[1], Phone: values[2]}
}

func (c ClientsModel) View(theme Theme, width int) string {
	if c.form != nil {
		return c.form.View(theme)
	}
	rows := make([]string, len(c.items))
	for i, cl := range c.items {
		rows[i] = fmt.Sprintf("%s  %s  %s",
			padRight(truncate(cl.Name, nameColumnWidth(width)), nameColumnWidth(width)),
			padRight(truncate(cl.Email, 28), 28),
			cl.Phone)
	}
	out := renderDirectory(theme, "clients", c.loaded, c.err, rows, c.cursor)
	if c.deleting != nil {
		out += theme.Error.Render(fmt.Sprintf("Remove %q? [y/N]", c.deleting.Name)) + "\n"
	}
	return out
}

func renderDirectory(theme Theme, noun string, loaded bool, err error, rows []string, cursor int) string {
	switch {
	case !loaded:
		return theme.Dim.Render("Loading "+noun+"...") + "\n"
	case err != nil:
		return theme.Error.Render(fmt.Sprintf("Could not load %s: %v", noun, err)) + "\n"
	case len(rows) == 0:
		return theme.Dim.Render(fmt.Sprintf("No %s yet. Press n to add one.", noun)) + "\n"
	}
	start := 0
	if cursor >= config.MaxVisibleRows {
		start = cursor - config.MaxVisibleRows + 1
	}
	end := min(start+config.MaxVisibleRows, len(rows))
	var b strings.Builder
	for i := start; i < end; i++ {
		if i == cursor {
			b.WriteString(theme.Focused.Render("> ") + theme.Selected.Render(rows[i]) + "\n")
		} else {
			b.WriteString("  " + theme.Text.Render(rows[i]) + "\n")
		}
	}
	b.WriteString(theme.Dim.Render(fmt.Sprintf("%d %s", len(rows), noun)) + "\n")
	return b.String()
}
