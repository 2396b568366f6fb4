package database

import (
	"context"

	"github.com/christophertwo/aella/internal/models"
)

// ProjectRepository defines project-related database operations.
type ProjectRepository interface {
	GetProjects(ctx context.Context, page, pageSize int) ([]models.Project, error)
	SearchProjects(ctx context.Context, query string, page, pageSize int) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (models.Project, error)
	AddProject(ctx context.Context, project models.Project) (models.Project, error)
	UpdateProject(ctx context.Context, project models.Project) error
	DeleteProject(ctx context.Context, id string) error
	CountProjectsByStatus(ctx context.Context) (map[models.ProjectStatus]int, error)
	GetAllProjects(ctx context.Context) ([]models.Project, error)
}

// WorkerRepository defines worker-related database operations.
type WorkerRepository interface {
	GetWorkers(ctx context.Context) ([]models.Worker, error)
	AddWorker(ctx context.Context, worker models.Worker) (models.Worker, error)
	DeleteWorker(ctx context.Context, id string) error
}

// ClientRepository defines client-related database operations.
type ClientRepository interface {
	GetClients(ctx context.Context) ([]models.Client, error)
	AddClient(ctx context.Context, client models.Client) (models.Client, error)
	DeleteClient(ctx context.Context, id string) error
}

// SettingsRepository persists user preferences as key/value pairs.
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, bool)
	SetSetting(ctx context.Context, key, value string) error
	ClearSetting(ctx context.Context, key string) error
	ClearAllSettings(ctx context.Context) error
}

// Repository combines all repository interfaces.
type Repository interface {
	ProjectRepository
	WorkerRepository
	ClientRepository
	SettingsRepository
}

var _ Repository = (*Database)(nil)
