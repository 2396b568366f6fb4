package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/christophertwo/aella/internal/util"
)

// handleKey routes a key press. Open dialogs and focused inputs see keys
// before the registry does.
func (m MainModel) handleKey(msg tea.KeyMsg) (MainModel, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.settings != nil {
		d, cmd := m.settings.Update(msg)
		m.settings = &d
		return m, cmd
	}
	switch m.screen {
	case ScreenWorks:
		if m.works.inputActive() {
			return m.handleWorksInput(msg)
		}
	case ScreenWorkers:
		if m.workers.inputActive() {
			return m.handleWorkersInput(msg)
		}
	case ScreenClients:
		if m.clients.inputActive() {
			return m.handleClientsInput(msg)
		}
	}
	next, cmd, _ := m.registry.Handle(m, msg)
	return next, cmd
}

// updateForm feeds msg to form. It returns the form to keep (nil once the
// form closes) and the values when it was submitted.
func updateForm(form *FormModel, msg tea.KeyMsg) (*FormModel, []string, tea.Cmd) {
	f, res, cmd := form.Update(msg)
	switch res {
	case formCancelled:
		return nil, nil, nil
	case formSubmitted:
		return nil, f.Values(), nil
	}
	return &f, nil, cmd
}

func confirmed(msg tea.KeyMsg) bool {
	return strings.EqualFold(msg.String(), "y")
}

func (m MainModel) handleWorksInput(msg tea.KeyMsg) (MainModel, tea.Cmd) {
	switch {
	case m.works.form != nil:
		form, values, cmd := updateForm(m.works.form, msg)
		m.works.form = form
		target := m.works.editing
		if form == nil {
			m.works.editing = nil
		}
		switch {
		case values == nil:
			return m, cmd
		case target != nil:
			return m, updateProjectCmd(m.ctx, m.db, editedProject(*target, values))
		default:
			return m, addProjectCmd(m.ctx, m.db, projectFromForm(values))
		}
	case m.works.deleting != nil:
		p := *m.works.deleting
		m.works.deleting = nil
		if confirmed(msg) {
			return m, deleteProjectCmd(m.ctx, m.db, p)
		}
		m.setStatus("Delete cancelled")
		return m, nil
	default:
		var cmd tea.Cmd
		m.works, cmd = m.works.updateSearch(msg)
		return m, cmd
	}
}

func (m MainModel) handleWorkersInput(msg tea.KeyMsg) (MainModel, tea.Cmd) {
	if m.workers.form != nil {
		form, values, cmd := updateForm(m.workers.form, msg)
		m.workers.form = form
		if values != nil {
			return m, addWorkerCmd(m.ctx, m.db, workerFromForm(values))
		}
		return m, cmd
	}
	w := *m.workers.deleting
	m.workers.deleting = nil
	if confirmed(msg) {
		return m, deleteWorkerCmd(m.ctx, m.db, w)
	}
	return m, nil
}

func (m MainModel) handleClientsInput(msg tea.KeyMsg) (MainModel, tea.Cmd) {
	if m.clients.form != nil {
		form, values, cmd := updateForm(m.clients.form, msg)
		m.clients.form = form
		if values != nil {
			return m, addClientCmd(m.ctx, m.db, clientFromForm(values))
		}
		return m, cmd
	}
	c := *m.clients.deleting
	m.clients.deleting = nil
	if confirmed(msg) {
		return m, deleteClientCmd(m.ctx, m.db, c)
	}
	return m, nil
}

func registerKeys(r *HandlerRegistry) {
	people := []Screen{ScreenWorkers, ScreenClients}
	works := []Screen{ScreenWorks}

	// Global.
	r.Register(KeyBinding{
		Binding: key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Handler: func(m MainModel, _ tea.KeyMsg) (MainModel, tea.Cmd, bool) { return m, tea.Quit, true },
	})
	r.Register(KeyBinding{
		Binding: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next screen")),
		Handler: handleCycleScreen,
	})
	r.Register(KeyBinding{
		Binding: key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "jump")),
		Handler: handleJumpScreen,
	})
	r.Register(KeyBinding{
		Binding: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		Handler: func(m MainModel, _ tea.KeyMsg) (MainModel, tea.Cmd, bool) { return m.openSettings(), nil, true },
	})
	r.Register(KeyBinding{
		Binding: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Handler: func(m MainModel, _ tea.KeyMsg) (MainModel, tea.Cmd, bool) {
			return m, loadOverviewCmd(m.ctx, m.db), true
		},
		Screens: []Screen{ScreenOverview},
	})

	// Works.
	r.Register(KeyBinding{
		Binding:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Handler:  handleFocusSearch,
		Screens:  works,
		Priority: 10,
	})
	r.Register(KeyBinding{
		Binding:  key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Handler:  handleCursor(-1),
		Screens:  []Screen{ScreenWorks, ScreenWorkers, ScreenClients},
		Priority: 10,
	})
	r.Register(KeyBinding{
		Binding:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Handler:  handleCursor(1),
		Screens:  []Screen{ScreenWorks, ScreenWorkers, ScreenClients},
		Priority: 10,
	})
	r.Register(KeyBinding{
		Binding:  key.NewBinding(key.WithKeys("g", "home")),
		Handler:  handleCursorEdge(false),
		Screens:  works,
		Priority: 10,
	})
	r.Register(KeyBinding{
		Binding:  key.NewBinding(key.WithKeys("G", "end")),
		Handler:  handleCursorEdge(true),
		Screens:  works,
		Priority: 10,
	})
	r.Register(KeyBinding{
		Binding:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Handler:  handleNew,
		Screens:  []Screen{ScreenWorks, ScreenWorkers, ScreenClients},
		Priority: 10,
	})
	r.Register(KeyBinding{
		Binding:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Handler:  handleEditProject,
		Screens:  works,
		Priority: 10,
	})
	r.Register(KeyBinding{
		Binding:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "status")),
		Handler:  handleCycleStatus,
		Screens:  works,
		Priority: 10,
	})
	r.Register(KeyBinding{
		Binding:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Handler:  handleDelete,
		Screens:  []Screen{ScreenWorks, ScreenWorkers, ScreenClients},
		Priority: 10,
	})
	r.Register(KeyBinding{
		Binding:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export yaml")),
		Handler:  handleExportYAML,
		Screens:  works,
		Priority: 10,
	})
	r.Register(KeyBinding{
		Binding:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pdf report")),
		Handler:  handleReportPDF,
		Screens:  works,
		Priority: 10,
	})
	r.Register(KeyBinding{
		Binding:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry/reload")),
		Handler:  handleRetry,
		Screens:  works,
		Priority: 10,
	})
	r.Register(KeyBinding{
		Binding:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Handler:  handleReloadPeople,
		Screens:  people,
		Priority: 10,
	})
}

func handleCycleScreen(m MainModel, msg tea.KeyMsg) (MainModel, tea.Cmd, bool) {
	delta := 1
	if msg.String() == "shift+tab" {
		delta = -1
	}
	n := len(screens)
	next := screens[((int(m.screen)+delta)%n+n)%n]
	m, cmd := m.switchScreen(next)
	return m, cmd, true
}

func handleJumpScreen(m MainModel, msg tea.KeyMsg) (MainModel, tea.Cmd, bool) {
	i := util.ParseIntOr(msg.String(), 0) - 1
	if i < 0 || i >= len(screens) {
		return m, nil, false
	}
	m, cmd := m.switchScreen(screens[i])
	return m, cmd, true
}

func handleFocusSearch(m MainModel, _ tea.KeyMsg) (MainModel, tea.Cmd, bool) {
	return m, m.works.search.Focus(), true
}

func handleCursor(delta int) KeyHandler {
	return func(m MainModel, _ tea.KeyMsg) (MainModel, tea.Cmd, bool) {
		switch m.screen {
		case ScreenWorks:
			m.works = m.works.moveCursor(delta)
		case ScreenWorkers:
			m.workers.cursor = util.Clamp(m.workers.cursor+delta, 0, max(len(m.workers.items)-1, 0))
		case ScreenClients:
			m.clients.cursor = util.Clamp(m.clients.cursor+delta, 0, max(len(m.clients.items)-1, 0))
		default:
			return m, nil, false
		}
		return m, nil, true
	}
}

func handleCursorEdge(end bool) KeyHandler {
	return func(m MainModel, _ tea.KeyMsg) (MainModel, tea.Cmd, bool) {
		n := len(m.works.state.Items)
		if end {
			m.works = m.works.moveCursor(n)
		} else {
			m.works = m.works.moveCursor(-n)
		}
		return m, nil, true
	}
}

func handleNew(m MainModel, _ tea.KeyMsg) (MainModel, tea.Cmd, bool) {
	var f FormModel
	switch m.screen {
	case ScreenWorks:
		f = newProjectForm()
		m.works.form = &f
	case ScreenWorkers:
		f = newWorkerForm()
		m.workers.form = &f
	case ScreenClients:
		f = newClientForm()
		m.clients.form = &f
	default:
		return m, nil, false
	}
	m.status = ""
	return m, nil, true
}

func handleEditProject(m MainModel, _ tea.KeyMsg) (MainModel, tea.Cmd, bool) {
	p, ok := m.works.selected()
	if !ok {
		return m, nil, true
	}
	f := newEditProjectForm(p)
	m.works.form = &f
	m.works.editing = &p
	return m, nil, true
}

func handleCycleStatus(m MainModel, _ tea.KeyMsg) (MainModel, tea.Cmd, bool) {
	p, ok := m.works.selected()
	if !ok {
		return m, nil, true
	}
	return m, setProjectStatusCmd(m.ctx, m.db, p, p.Status.Next()), true
}

func handleDelete(m MainModel, _ tea.KeyMsg) (MainModel, tea.Cmd, bool) {
	switch m.screen {
	case ScreenWorks:
		if p, ok := m.works.selected(); ok {
			m.works.deleting = &p
		}
	case ScreenWorkers:
		if w, ok := m.workers.selected(); ok {
			m.workers.deleting = &w
		}
	case ScreenClients:
		if c, ok := m.clients.selected(); ok {
			m.clients.deleting = &c
		}
	default:
		return m, nil, false
	}
	return m, nil, true
}

func handleExportYAML(m MainModel, _ tea.KeyMsg) (MainModel, tea.Cmd, bool) {
	m.setStatus("Exporting...")
	return m, exportYAMLCmd(m.ctx, m.db, m.reportsDir, m.now()), true
}

func handleReportPDF(m MainModel, _ tea.KeyMsg) (MainModel, tea.Cmd, bool) {
	items := m.works.state.Items
	if len(items) == 0 {
		m.setStatusError("Nothing to report")
		return m, nil, true
	}
	m.setStatus("Writing report...")
	return m, projectReportCmd(items, m.works.state.ActiveQuery, m.reportsDir, m.now()), true
}

func handleRetry(m MainModel, _ tea.KeyMsg) (MainModel, tea.Cmd, bool) {
	if m.works.state.LoadErr != nil {
		m.works.ctrl.Retry()
	} else {
		m.works.ctrl.Reload()
	}
	return m, nil, true
}

func handleReloadPeople(m MainModel, _ tea.KeyMsg) (MainModel, tea.Cmd, bool) {
	if m.screen == ScreenWorkers {
		return m, loadWorkersCmd(m.ctx, m.db), true
	}
	return m, loadClientsCmd(m.ctx, m.db), true
}
