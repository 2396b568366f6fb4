package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/christophertwo/aella/internal/models"
)

const exportVersion = 1

type ExportProject struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Status      string   `yaml:"status"`
	CreatedAt   string   `yaml:"created_at"`
	TeamMembers []string `yaml:"team_members,omitempty"`
}

type ExportWorker struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Role  string `yaml:"role,omitempty"`
	Email string `yaml:"email,omitempty"`
}

type ExportClient struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Email string `yaml:"email,omitempty"`
	Phone string `yaml:"phone,omitempty"`
}

// Snapshot is the full export document.
type Snapshot struct {
	Version    int             `yaml:"version"`
	ExportedAt string          `yaml:"exported_at"`
	Projects   []ExportProject `yaml:"projects"`
	Workers    []ExportWorker  `yaml:"workers"`
	Clients    []ExportClient  `yaml:"clients"`
}

func (d *Database) BuildSnapshot(ctx context.Context) (Snapshot, error) {
	projects, err := d.GetAllProjects(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	workers, err := d.GetWorkers(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	clients, err := d.GetClients(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		Version:    exportVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Projects:   make([]ExportProject, 0, len(projects)),
		Workers:    make([]ExportWorker, 0, len(workers)),
		Clients:    make([]ExportClient, 0, len(clients)),
	}
	for _, p := range projects {
		snap.Projects = append(snap.Projects, ExportProject{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Status:      string(p.Status),
			CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339Nano),
			TeamMembers: p.TeamMembers,
		})
	}
	for _, w := range workers {
		snap.Workers = append(snap.Workers, ExportWorker(w))
	}
	for _, c := range clients {
		snap.Clients = append(snap.Clients, ExportClient(c))
	}
	return snap, nil
}

// ExportYAML writes a snapshot of every record to path.
func (d *Database) ExportYAML(ctx context.Context, path string) error {
	snap, err := d.BuildSnapshot(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// ImportYAML upserts every record of an export document in one transaction.
func (d *Database) ImportYAML(ctx context.Context, data []byte) error {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parse import: %w", err)
	}
	if snap.Version > exportVersion {
		return fmt.Errorf("unsupported export version %d", snap.Version)
	}

	projects := make([]models.Project, 0, len(snap.Projects))
	for _, ep := range snap.Projects {
		created, err := time.Parse(time.RFC3339Nano, ep.CreatedAt)
		if err != nil {
			return fmt.Errorf("project %s created_at: %w", ep.ID, err)
		}
		p, err := normalizeProject(models.Project{
			ID:          ep.ID,
			Name:        ep.Name,
			Description: ep.Description,
			Status:      models.ProjectStatus(ep.Status),
			CreatedAt:   created,
			TeamMembers: ep.TeamMembers,
		})
		if err != nil {
			return wrapErr(EntityProject, "import", ep.ID, err)
		}
		projects = append(projects, p)
	}

	return d.withDBContext(ctx, func(ctx context.Context) error {
		tx, err := d.DB.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin import: %w", err)
		}
		for _, p := range projects {
			if _, err := tx.ExecContext(ctx, upsertProjectSQL, projectArgs(p)...); err != nil {
				return rollbackWithLog(d.logger, tx, wrapErr(EntityProject, "import", p.ID, err))
			}
		}
		for _, w := range snap.Workers {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO workers (id, name, role, email) VALUES (?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET name = excluded.name, role = excluded.role, email = excluded.email`,
				w.ID, w.Name, w.Role, w.Email); err != nil {
				return rollbackWithLog(d.logger, tx, wrapErr(EntityWorker, "import", w.ID, err))
			}
		}
		for _, c := range snap.Clients {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO clients (id, name, email, phone) VALUES (?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET name = excluded.name, email = excluded.email, phone = excluded.phone`,
				c.ID, c.Name, c.Email, c.Phone); err != nil {
				return rollbackWithLog(d.logger, tx, wrapErr(EntityClient, "import", c.ID, err))
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit import: %w", err)
		}
		return nil
	})
}
