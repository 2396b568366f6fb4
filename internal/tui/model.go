package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/christophertwo/aella/internal/config"
	"github.com/christophertwo/aella/internal/projectlist"
	"github.com/christophertwo/aella/internal/util"
)

// Screen is one of the top level tabs.
type Screen int

const (
	ScreenOverview Screen = iota
	ScreenWorks
	ScreenWorkers
	ScreenClients
)

var screens = []Screen{ScreenOverview, ScreenWorks, ScreenWorkers, ScreenClients}

func (s Screen) String() string {
	switch s {
	case ScreenOverview:
		return "Workspace"
	case ScreenWorks:
		return "Works"
	case ScreenWorkers:
		return "Workers"
	case ScreenClients:
		return "Clients"
	}
	return fmt.Sprintf("Screen(%d)", int(s))
}

// Options configures NewMainModel. Zero values pick defaults.
type Options struct {
	Logger      *slog.Logger
	PageSize    int
	Preferences Preferences
	ReportsDir  string
	Now         func() time.Time
}

// MainModel is the root bubbletea model. It owns the preferences and the
// project list controller; screens are plain values it renders.
type MainModel struct {
	ctx      context.Context
	db       Database
	logger   *slog.Logger
	registry *HandlerRegistry
	help     help.Model
	now      func() time.Time

	screen      Screen
	theme       Theme
	basePrefs   Preferences
	prefs       Preferences
	prefsBackup Preferences
	settings    *SettingsDialog

	works    WorksModel
	workers  WorkersModel
	clients  ClientsModel
	overview OverviewModel

	status     string
	statusErr  bool
	reportsDir string
	width      int
	height     int
}

func NewMainModel(ctx context.Context, db Database, opts Options) MainModel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	base := opts.Preferences
	if base == (Preferences{}) {
		base = DefaultPreferences()
	}
	prefs := LoadPreferences(ctx, db, base)
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = config.PageSize
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	ctrl := projectlist.New(db,
		projectlist.WithPageSize(pageSize),
		projectlist.WithDebounce(prefs.SearchDelay),
		projectlist.WithLogger(logger),
		projectlist.WithContext(ctx),
	)

	registry := NewHandlerRegistry()
	registerKeys(registry)

	return MainModel{
		ctx:        ctx,
		db:         db,
		logger:     logger,
		registry:   registry,
		help:       help.New(),
		now:        now,
		screen:     ScreenOverview,
		theme:      ResolveTheme(prefs.Theme, prefs.Accent),
		basePrefs:  base,
		prefs:      prefs,
		works:      newWorksModel(ctrl),
		reportsDir: opts.ReportsDir,
	}
}

func (m MainModel) Init() tea.Cmd {
	m.works.ctrl.Start()
	return tea.Batch(
		m.works.listen(),
		m.works.spinner.Tick,
		loadOverviewCmd(m.ctx, m.db),
		loadWorkersCmd(m.ctx, m.db),
		loadClientsCmd(m.ctx, m.db),
	)
}

// Close releases the project list controller. Call it after the program
// exits.
func (m MainModel) Close() {
	m.works.close()
}

func (m MainModel) Screen() Screen {
	return m.screen
}

func (m MainModel) Preferences() Preferences {
	return m.prefs
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case projectsStateMsg:
		if !msg.ok {
			return m, nil
		}
		m.works = m.works.applyState(msg.state)
		return m, m.works.listen()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.works.spinner, cmd = m.works.spinner.Update(msg)
		return m, cmd

	case overviewLoadedMsg:
		m.overview = m.overview.withCounts(msg.counts, msg.err)
		if msg.err != nil {
			util.LogError(m.logger, "load overview", msg.err)
		}
		return m, nil

	case workersLoadedMsg:
		m.workers = m.workers.withItems(msg.workers, msg.err)
		return m, nil

	case clientsLoadedMsg:
		m.clients = m.clients.withItems(msg.clients, msg.err)
		return m, nil

	case mutationDoneMsg:
		return m.handleMutationDone(msg)

	case exportDoneMsg:
		if msg.err != nil {
			m.setStatusError(fmt.Sprintf("%s failed: %v", msg.kind, msg.err))
			util.LogError(m.logger, strings.ToLower(msg.kind), msg.err)
		} else {
			m.setStatus(fmt.Sprintf("%s written to %s", msg.kind, msg.path))
		}
		return m, nil

	case prefsSavedMsg:
		if msg.err != nil {
			m.setStatusError(fmt.Sprintf("Error saving settings: %v", msg.err))
			util.LogError(m.logger, "save preferences", msg.err)
		} else {
			m.setStatus("Settings saved")
		}
		return m, nil

	case settingsResetRequestedMsg:
		return m, resetPrefsCmd(m.ctx, m.db)

	case prefsResetMsg:
		if msg.err != nil {
			m.setStatusError(fmt.Sprintf("Error resetting settings: %v", msg.err))
			util.LogError(m.logger, "reset preferences", msg.err)
			return m, nil
		}
		m = m.applyPreferences(m.basePrefs)
		m.prefsBackup = m.basePrefs
		if m.settings != nil {
			d := NewSettingsDialog(buildSettingsItems(m.prefs))
			m.settings = &d
		}
		m.setStatus("Settings reset to defaults")
		return m, nil

	case themeModeChangedMsg:
		m.prefs.Theme = msg.mode
		m.theme = ResolveTheme(m.prefs.Theme, m.prefs.Accent)
		return m, nil
	case accentChangedMsg:
		m.prefs.Accent = msg.accent
		m.theme = ResolveTheme(m.prefs.Theme, m.prefs.Accent)
		return m, nil
	case showDescriptionsChangedMsg:
		m.prefs.ShowDescriptions = msg.show
		return m, nil
	case displayNameChangedMsg:
		m.prefs.DisplayName = msg.name
		return m, nil
	case searchDelayChangedMsg:
		m.prefs.SearchDelay = msg.delay
		m.works.ctrl.SetDebounce(msg.delay)
		return m, nil

	case settingsClosedMsg:
		m.settings = nil
		if msg.save {
			return m, savePrefsCmd(m.ctx, m.db, m.prefs)
		}
		m = m.applyPreferences(m.prefsBackup)
		return m, nil
	}
	return m, nil
}

func (m MainModel) handleMutationDone(msg mutationDoneMsg) (MainModel, tea.Cmd) {
	if msg.err != nil {
		m.setStatusError(fmt.Sprintf("Error: %v", msg.err))
		util.LogError(m.logger, "mutation", msg.err)
		return m, nil
	}
	m.setStatus(msg.text)
	var cmds []tea.Cmd
	if msg.refresh&refreshProjects != 0 {
		m.works.ctrl.Reload()
		cmds = append(cmds, loadOverviewCmd(m.ctx, m.db))
	}
	if msg.refresh&refreshWorkers != 0 {
		cmds = append(cmds, loadWorkersCmd(m.ctx, m.db))
	}
	if msg.refresh&refreshClients != 0 {
		cmds = append(cmds, loadClientsCmd(m.ctx, m.db))
	}
	return m, tea.Batch(cmds...)
}

// applyPreferences replaces the live preferences and pushes them to the
// theme and the controller.
func (m MainModel) applyPreferences(p Preferences) MainModel {
	m.prefs = p
	m.theme = ResolveTheme(p.Theme, p.Accent)
	m.works.ctrl.SetDebounce(p.SearchDelay)
	return m
}

func (m MainModel) openSettings() MainModel {
	m.prefsBackup = m.prefs
	d := NewSettingsDialog(buildSettingsItems(m.prefs))
	m.settings = &d
	return m
}

func (m *MainModel) setStatus(text string) {
	m.status = text
	m.statusErr = false
}

func (m *MainModel) setStatusError(text string) {
	m.status = text
	m.statusErr = true
}

func (m MainModel) switchScreen(s Screen) (MainModel, tea.Cmd) {
	if s == m.screen {
		return m, nil
	}
	m.screen = s
	m.status = ""
	if s == ScreenOverview {
		return m, loadOverviewCmd(m.ctx, m.db)
	}
	return m, nil
}

func (m MainModel) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader() + "\n\n")

	if m.settings != nil {
		b.WriteString(m.settings.View(m.theme) + "\n")
	} else {
		switch m.screen {
		case ScreenOverview:
			b.WriteString(m.overview.View(m.theme, m.prefs.DisplayName, len(m.workers.items), len(m.clients.items)))
		case ScreenWorks:
			b.WriteString(m.works.View(m.theme, m.width, m.prefs.ShowDescriptions))
		case ScreenWorkers:
			b.WriteString(m.workers.View(m.theme, m.width))
		case ScreenClients:
			b.WriteString(m.clients.View(m.theme, m.width))
		}
	}

	if m.status != "" {
		style := m.theme.Success
		if m.statusErr {
			style = m.theme.Error
		}
		b.WriteString("\n" + style.Render(m.status) + "\n")
	}
	if m.settings == nil && !m.inputActive() {
		b.WriteString("\n" + m.help.ShortHelpView(m.registry.HelpForScreen(m.screen)))
	}
	return m.theme.Base.Render(b.String())
}

func (m MainModel) renderHeader() string {
	tabs := make([]string, len(screens))
	for i, s := range screens {
		label := fmt.Sprintf("%d %s", i+1, s)
		if s == m.screen {
			tabs[i] = m.theme.ActiveTab.Render(label)
		} else {
			tabs[i] = m.theme.Tab.Render(label)
		}
	}
	title := m.theme.Header.Render(config.AppName) + " " + m.theme.Dim.Render(versionLabel())
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", strings.Join(tabs, ""))
}

// inputActive reports whether the current screen has captured the
// keyboard for text entry or a confirmation.
func (m MainModel) inputActive() bool {
	switch m.screen {
	case ScreenWorks:
		return m.works.inputActive()
	case ScreenWorkers:
		return m.workers.inputActive()
	case ScreenClients:
		return m.clients.inputActive()
	}
	return false
}
