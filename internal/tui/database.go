package tui

import (
	"context"

	"github.com/christophertwo/aella/internal/models"
)

// Database defines the persistence methods the TUI requires.
type Database interface {
	GetProjects(ctx context.Context, page, pageSize int) ([]models.Project, error)
	SearchProjects(ctx context.Context, query string, page, pageSize int) ([]models.Project, error)
	AddProject(ctx context.Context, project models.Project) (models.Project, error)
	UpdateProject(ctx context.Context, project models.Project) error
	UpdateProjectStatus(ctx context.Context, id string, status models.ProjectStatus) error
	DeleteProject(ctx context.Context, id string) error
	CountProjectsByStatus(ctx context.Context) (map[models.ProjectStatus]int, error)

	GetWorkers(ctx context.Context) ([]models.Worker, error)
	AddWorker(ctx context.Context, worker models.Worker) (models.Worker, error)
	DeleteWorker(ctx context.Context, id string) error

	GetClients(ctx context.Context) ([]models.Client, error)
	AddClient(ctx context.Context, client models.Client) (models.Client, error)
	DeleteClient(ctx context.Context, id string) error

	GetSetting(ctx context.Context, key string) (string, bool)
	SetSetting(ctx context.Context, key, value string) error
	ClearAllSettings(ctx context.Context) error

	ExportYAML(ctx context.Context, path string) error
}
