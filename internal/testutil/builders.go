package testutil

import (
	"fmt"
	"time"

	"github.com/christophertwo/aella/internal/models"
	"github.com/christophertwo/aella/internal/util"
)

// ProjectBuilder provides fluent API for creating test projects.
type ProjectBuilder struct {
	project models.Project
}

func NewProject() *ProjectBuilder {
	return &ProjectBuilder{
		project: models.Project{
			ID:          "proj_test",
			Name:        "Test Project",
			Description: "Test description",
			Status:      models.StatusInProgress,
			CreatedAt:   time.Date(2025, 7, 11, 10, 0, 0, 0, time.UTC),
			TeamMembers: []string{"Ana"},
		},
	}
}

func (b *ProjectBuilder) WithID(id string) *ProjectBuilder {
	b.project.ID = id
	return b
}

func (b *ProjectBuilder) WithName(name string) *ProjectBuilder {
	b.project.Name = name
	return b
}

func (b *ProjectBuilder) WithDescription(d string) *ProjectBuilder {
	b.project.Description = d
	return b
}

func (b *ProjectBuilder) WithStatus(s models.ProjectStatus) *ProjectBuilder {
	b.project.Status = s
	return b
}

func (b *ProjectBuilder) WithCreatedAt(t time.Time) *ProjectBuilder {
	b.project.CreatedAt = t
	return b
}

// WithMembers takes a comma separated list, as typed in the add form.
func (b *ProjectBuilder) WithMembers(list string) *ProjectBuilder {
	b.project.TeamMembers = util.ParseMembers(list)
	return b
}

func (b *ProjectBuilder) Build() models.Project {
	p := b.project
	p.TeamMembers = append([]string(nil), b.project.TeamMembers...)
	return p
}

// Projects returns n projects with IDs prefix0..prefix(n-1).
func Projects(prefix string, n int) []models.Project {
	out := make([]models.Project, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, NewProject().
			WithID(fmt.Sprintf("%s%d", prefix, i)).
			WithName(fmt.Sprintf("Project %s%d", prefix, i)).
			Build())
	}
	return out
}

// WorkerBuilder provides fluent API for creating test workers.
type WorkerBuilder struct {
	worker models.Worker
}

func NewWorker() *WorkerBuilder {
	return &WorkerBuilder{
		worker: models.Worker{
			ID:    "worker_test",
			Name:  "Test Worker",
			Role:  "Engineer",
			Email: "worker@example.com",
		},
	}
}

func (b *WorkerBuilder) WithName(name string) *WorkerBuilder {
	b.worker.Name = name
	return b
}

func (b *WorkerBuilder) WithRole(role string) *WorkerBuilder {
	b.worker.Role = role
	return b
}

func (b *WorkerBuilder) Build() models.Worker {
	return b.worker
}

// ClientBuilder provides fluent API for creating test clients.
type ClientBuilder struct {
	client models.Client
}

func NewClient() *ClientBuilder {
	return &ClientBuilder{
		client: models.Client{
			ID:    "client_test",
			Name:  "Test Client",
			Email: "client@example.com",
			Phone: "555-0100",
		},
	}
}

func (b *ClientBuilder) WithName(name string) *ClientBuilder {
	b.client.Name = name
	return b
}

func (b *ClientBuilder) Build() models.Client {
	return b.client
}
