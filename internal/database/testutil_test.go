package database

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/christophertwo/aella/internal/models"
	"github.com/christophertwo/aella/internal/util"
)

func setupTestDB(t *testing.T, ctx context.Context) *Database {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	db, err := Open(ctx, dbPath, WithLogger(util.DiscardLogger()))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("db close failed: %v", err)
		}
	})
	return db
}

// testBase is the creation time of the newest project a builder stores.
var testBase = time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

type TestDataBuilder struct {
	t          *testing.T
	ctx        context.Context
	db         *Database
	projectIDs []string
	workerIDs  []string
	clientIDs  []string
}

func NewTestDataBuilder(t *testing.T) *TestDataBuilder {
	t.Helper()
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	return &TestDataBuilder{t: t, ctx: ctx, db: db}
}

// WithProjects stores count projects named "Project N", newest first, one
// minute apart.
func (b *TestDataBuilder) WithProjects(count int) *TestDataBuilder {
	b.t.Helper()
	offset := len(b.projectIDs)
	for i := 0; i < count; i++ {
		n := offset + i
		p, err := b.db.AddProject(b.ctx, models.Project{
			ID:          fmt.Sprintf("p%03d", n),
			Name:        fmt.Sprintf("Project %d", n),
			Description: fmt.Sprintf("Description %d", n),
			Status:      models.ProjectStatuses[n%len(models.ProjectStatuses)],
			CreatedAt:   testBase.Add(-time.Duration(n) * time.Minute),
			TeamMembers: []string{"Ana"},
		})
		if err != nil {
			b.t.Fatalf("AddProject failed: %v", err)
		}
		b.projectIDs = append(b.projectIDs, p.ID)
	}
	return b
}

func (b *TestDataBuilder) WithProject(p models.Project) *TestDataBuilder {
	b.t.Helper()
	stored, err := b.db.AddProject(b.ctx, p)
	if err != nil {
		b.t.Fatalf("AddProject failed: %v", err)
	}
	b.projectIDs = append(b.projectIDs, stored.ID)
	return b
}

func (b *TestDataBuilder) WithWorker(name, role string) *TestDataBuilder {
	b.t.Helper()
	w, err := b.db.AddWorker(b.ctx, models.Worker{Name: name, Role: role})
	if err != nil {
		b.t.Fatalf("AddWorker failed: %v", err)
	}
	b.workerIDs = append(b.workerIDs, w.ID)
	return b
}

func (b *TestDataBuilder) WithClient(name, email string) *TestDataBuilder {
	b.t.Helper()
	c, err := b.db.AddClient(b.ctx, models.Client{Name: name, Email: email})
	if err != nil {
		b.t.Fatalf("AddClient failed: %v", err)
	}
	b.clientIDs = append(b.clientIDs, c.ID)
	return b
}

func (b *TestDataBuilder) Build() *Database {
	return b.db
}

func (b *TestDataBuilder) ProjectIDs() []string {
	return b.projectIDs
}
