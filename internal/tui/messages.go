package tui

import (
	"time"

	"github.com/christophertwo/aella/internal/models"
	"github.com/christophertwo/aella/internal/projectlist"
)

// projectsStateMsg carries a controller snapshot. ok is false once the
// subscription is closed.
type projectsStateMsg struct {
	state projectlist.State
	ok    bool
}

type overviewLoadedMsg struct {
	counts map[models.ProjectStatus]int
	err    error
}

type workersLoadedMsg struct {
	workers []models.Worker
	err     error
}

type clientsLoadedMsg struct {
	clients []models.Client
	err     error
}

// refreshTarget says which lists a mutation invalidates.
type refreshTarget int

const (
	refreshProjects refreshTarget = 1 << iota
	refreshWorkers
	refreshClients
)

type mutationDoneMsg struct {
	text    string
	err     error
	refresh refreshTarget
}

type exportDoneMsg struct {
	kind string
	path string
	err  error
}

type prefsSavedMsg struct {
	err error
}

type prefsResetMsg struct {
	err error
}

// Settings dialog change messages. The dialog only emits them; MainModel
// owns the preferences they update.
type themeModeChangedMsg struct{ mode string }

type accentChangedMsg struct{ accent string }

type showDescriptionsChangedMsg struct{ show bool }

type displayNameChangedMsg struct{ name string }

type searchDelayChangedMsg struct{ delay time.Duration }

type settingsClosedMsg struct{ save bool }

// settingsResetRequestedMsg asks the owner to drop stored preferences.
type settingsResetRequestedMsg struct{}
