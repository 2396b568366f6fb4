package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/christophertwo/aella/internal/models"
	"github.com/christophertwo/aella/internal/projectlist"
)

func listenStates(ch <-chan projectlist.State) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-ch
		return projectsStateMsg{state: s, ok: ok}
	}
}

func loadOverviewCmd(ctx context.Context, db Database) tea.Cmd {
	return func() tea.Msg {
		counts, err := db.CountProjectsByStatus(ctx)
		return overviewLoadedMsg{counts: counts, err: err}
	}
}

func loadWorkersCmd(ctx context.Context, db Database) tea.Cmd {
	return func() tea.Msg {
		workers, err := db.GetWorkers(ctx)
		return workersLoadedMsg{workers: workers, err: err}
	}
}

func loadClientsCmd(ctx context.Context, db Database) tea.Cmd {
	return func() tea.Msg {
		clients, err := db.GetClients(ctx)
		return clientsLoadedMsg{clients: clients, err: err}
	}
}

func addProjectCmd(ctx context.Context, db Database, p models.Project) tea.Cmd {
	return func() tea.Msg {
		stored, err := db.AddProject(ctx, p)
		return mutationDoneMsg{text: fmt.Sprintf("Added project %q", stored.Name), err: err, refresh: refreshProjects}
	}
}

func updateProjectCmd(ctx context.Context, db Database, p models.Project) tea.Cmd {
	return func() tea.Msg {
		err := db.UpdateProject(ctx, p)
		return mutationDoneMsg{text: fmt.Sprintf("Updated project %q", p.Name), err: err, refresh: refreshProjects}
	}
}

func setProjectStatusCmd(ctx context.Context, db Database, p models.Project, status models.ProjectStatus) tea.Cmd {
	return func() tea.Msg {
		err := db.UpdateProjectStatus(ctx, p.ID, status)
		return mutationDoneMsg{text: fmt.Sprintf("%s is now %s", p.Name, status.Label()), err: err, refresh: refreshProjects}
	}
}

func deleteProjectCmd(ctx context.Context, db Database, p models.Project) tea.Cmd {
	return func() tea.Msg {
		err := db.DeleteProject(ctx, p.ID)
		return mutationDoneMsg{text: fmt.Sprintf("Deleted project %q", p.Name), err: err, refresh: refreshProjects}
	}
}

func addWorkerCmd(ctx context.Context, db Database, w models.Worker) tea.Cmd {
	return func() tea.Msg {
		stored, err := db.AddWorker(ctx, w)
		return mutationDoneMsg{text: fmt.Sprintf("Added worker %q", stored.Name), err: err, refresh: refreshWorkers}
	}
}

func deleteWorkerCmd(ctx context.Context, db Database, w models.Worker) tea.Cmd {
	return func() tea.Msg {
		err := db.DeleteWorker(ctx, w.ID)
		return mutationDoneMsg{text: fmt.Sprintf("Removed worker %q", w.Name), err: err, refresh: refreshWorkers}
	}
}

func addClientCmd(ctx context.Context, db Database, c models.Client) tea.Cmd {
	return func() tea.Msg {
		stored, err := db.AddClient(ctx, c)
		return mutationDoneMsg{text: fmt.Sprintf("Added client %q", stored.Name), err: err, refresh: refreshClients}
	}
}

func deleteClientCmd(ctx context.Context, db Database, c models.Client) tea.Cmd {
	return func() tea.Msg {
		err := db.DeleteClient(ctx, c.ID)
		return mutationDoneMsg{text: fmt.Sprintf("Removed client %q", c.Name), err: err, refresh: refreshClients}
	}
}

func exportYAMLCmd(ctx context.Context, db Database, dir string, now time.Time) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(dir, "exports", fmt.Sprintf("aella_export_%s.yaml", now.Format("20060102_150405")))
		err := db.ExportYAML(ctx, path)
		return exportDoneMsg{kind: "Export", path: path, err: err}
	}
}

func projectReportCmd(projects []models.Project, query, dir string, now time.Time) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(dir, fmt.Sprintf("aella_report_%s.pdf", now.Format("20060102_150405")))
		err := GenerateProjectReport(path, query, projects, now)
		return exportDoneMsg{kind: "Report", path: path, err: err}
	}
}

func resetPrefsCmd(ctx context.Context, db Database) tea.Cmd {
	return func() tea.Msg {
		return prefsResetMsg{err: db.ClearAllSettings(ctx)}
	}
}

func savePrefsCmd(ctx context.Context, store SettingsStore, p Preferences) tea.Cmd {
	return func() tea.Msg {
		return prefsSavedMsg{err: SavePreferences(ctx, store, p)}
	}
}
