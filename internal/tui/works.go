package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/christophertwo/aella/internal/config"
	"github.com/christophertwo/aella/internal/models"
	"github.com/christophertwo/aella/internal/projectlist"
	"github.com/christophertwo/aella/internal/util"
)

// WorksModel is the project list screen. The controller owns the list
// state; this model keeps the latest snapshot plus cursor and input state.
type WorksModel struct {
	ctrl        *projectlist.Controller
	states      <-chan projectlist.State
	unsubscribe func()
	state       projectlist.State
	cursor      int
	offset      int
	search      textinput.Model
	spinner     spinner.Model
	form        *FormModel
	editing     *models.Project
	deleting    *models.Project
}

func newWorksModel(ctrl *projectlist.Controller) WorksModel {
	si := textinput.New()
	si.Placeholder = "Search projects (status:completed ...)"
	si.Prompt = "/ "
	si.CharLimit = config.MaxNameLength
	si.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	states, unsubscribe := ctrl.Subscribe()
	return WorksModel{
		ctrl:        ctrl,
		states:      states,
		unsubscribe: unsubscribe,
		state:       ctrl.State(),
		search:      si,
		spinner:     sp,
	}
}

func (w WorksModel) listen() tea.Cmd {
	return listenStates(w.states)
}

// close unsubscribes and stops the controller.
func (w WorksModel) close() {
	if w.unsubscribe != nil {
		w.unsubscribe()
	}
	w.ctrl.Close()
}

// inputActive reports whether keys belong to the search box, the add form
// or the delete confirmation.
func (w WorksModel) inputActive() bool {
	return w.search.Focused() || w.form != nil || w.deleting != nil
}

func (w WorksModel) applyState(s projectlist.State) WorksModel {
	if s.ActiveQuery != w.state.ActiveQuery || (s.Page == 1 && w.state.Page > 1) {
		w.cursor, w.offset = 0, 0
	}
	w.state = s
	if w.cursor >= len(s.Items) {
		w.cursor = len(s.Items) - 1
	}
	if w.cursor < 0 {
		w.cursor = 0
	}
	return w
}

func (w WorksModel) selected() (models.Project, bool) {
	if w.cursor < 0 || w.cursor >= len(w.state.Items) {
		return models.Project{}, false
	}
	return w.state.Items[w.cursor], true
}

// moveCursor moves by delta and asks for the next page when the cursor
// comes within LoadMoreThreshold rows of the end.
func (w WorksModel) moveCursor(delta int) WorksModel {
	n := len(w.state.Items)
	if n == 0 {
		return w
	}
	w.cursor = util.Clamp(w.cursor+delta, 0, n-1)
	if w.cursor < w.offset {
		w.offset = w.cursor
	}
	if w.cursor >= w.offset+config.MaxVisibleRows {
		w.offset = w.cursor - config.MaxVisibleRows + 1
	}
	if n-1-w.cursor < config.LoadMoreThreshold {
		w.ctrl.Dispatch(projectlist.LoadMoreRequested{})
	}
	return w
}

func (w WorksModel) updateSearch(msg tea.KeyMsg) (WorksModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		w.search.Blur()
		return w, nil
	}
	before := w.search.Value()
	var cmd tea.Cmd
	w.search, cmd = w.search.Update(msg)
	if after := w.search.Value(); after != before {
		w.ctrl.Dispatch(projectlist.SearchQueryChanged{Text: after})
	}
	return w, cmd
}

func newProjectForm() FormModel {
	return NewFormModel("New project",
		FormFieldSpec{Label: "Name", Placeholder: "Website redesign", CharLimit: config.MaxNameLength, Required: true},
		FormFieldSpec{Label: "Description", Placeholder: "What is it about?", CharLimit: config.MaxDescriptionLength},
		FormFieldSpec{Label: "Team", Placeholder: "Ana, Luis, Eva", CharLimit: config.MaxDescriptionLength},
	)
}

// newEditProjectForm is the add form prefilled from p.
func newEditProjectForm(p models.Project) FormModel {
	f := newProjectForm()
	f.Title = "Edit project"
	f.SetValue(0, p.Name)
	f.SetValue(1, p.Description)
	f.SetValue(2, strings.Join(p.TeamMembers, ", "))
	return f
}

// editedProject applies form values to p, keeping its ID, status and
// creation time.
func editedProject(p models.Project, values []string) models.Project {
	fields := projectFromForm(values)
	p.Name = fields.Name
	p.Description = fields.Description
	p.TeamMembers = fields.TeamMembers
	return p
}

func projectFromForm(values []string) models.Project {
	return models.Project{
		Name:        values[0],
		Description: values[1],
		Status:      models.StatusInProgress,
		TeamMembers: util.ParseMembers(values[2]),
	}
}

func (w WorksModel) View(theme Theme, width int, showDescriptions bool) string {
	if w.form != nil {
		return w.form.View(theme)
	}

	var b strings.Builder
	b.WriteString(theme.Input.Render(w.search.View()) + "\n")

	s := w.state
	switch {
	case s.InitialLoading && len(s.Items) == 0:
		b.WriteString(w.spinner.View() + theme.Dim.Render(" Loading projects...") + "\n")
	case len(s.Items) == 0 && s.LoadErr == nil:
		if strings.TrimSpace(s.ActiveQuery) != "" {
			b.WriteString(theme.Dim.Render(fmt.Sprintf("No projects match %q.", s.ActiveQuery)) + "\n")
		} else {
			b.WriteString(theme.Dim.Render("No projects yet. Press n to add one.") + "\n")
		}
	default:
		b.WriteString(w.renderRows(theme, width, showDescriptions))
	}

	switch {
	case s.InitialLoading && len(s.Items) > 0:
		b.WriteString(w.spinner.View() + theme.Dim.Render(" Searching...") + "\n")
	case s.LoadingMore:
		b.WriteString(w.spinner.View() + theme.Dim.Render(" Loading more...") + "\n")
	case s.LoadErr != nil:
		b.WriteString(theme.Error.Render("Could not load projects: "+s.LoadErr.Error()) + theme.Dim.Render("  [r] retry") + "\n")
	case !s.HasMore && len(s.Items) > 0:
		b.WriteString(theme.Dim.Render(fmt.Sprintf("%s, end of list", FormatCount(len(s.Items), "project"))) + "\n")
	}

	if w.deleting != nil {
		b.WriteString(theme.Error.Render(fmt.Sprintf("Delete %q? [y/N]", w.deleting.Name)) + "\n")
	}
	return b.String()
}

func (w WorksModel) renderRows(theme Theme, width int, showDescriptions bool) string {
	nameWidth := nameColumnWidth(width)
	compact := width > 0 && width < config.CompactModeThreshold
	end := w.offset + config.MaxVisibleRows
	if end > len(w.state.Items) {
		end = len(w.state.Items)
	}

	var b strings.Builder
	for i := w.offset; i < end; i++ {
		p := w.state.Items[i]
		name := padRight(truncate(p.Name, nameWidth), nameWidth)
		row := fmt.Sprintf("%s  %s  %s", name, padRight(StatusBadge(p.Status), 12), theme.Dim.Render(p.CreationDate()))
		if !compact {
			row += theme.Dim.Render("  " + FormatMembers(p.TeamMembers, config.MaxMembersDisplayed))
		}
		if i == w.cursor {
			b.WriteString(theme.Focused.Render("> ") + theme.Selected.Render(name) + strings.TrimPrefix(row, name) + "\n")
		} else {
			b.WriteString("  " + theme.Text.Render(row) + "\n")
		}
		if showDescriptions && !compact && p.Description != "" {
			desc := truncate(p.Description, max(width-6, config.MinNameWidth))
			b.WriteString("    " + theme.Dim.Render(desc) + "\n")
		}
	}
	return b.String()
}
