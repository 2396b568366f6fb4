package database

import (
	"context"
	"testing"
	"time"

	"github.com/christophertwo/aella/internal/models"
)

func TestGenerateDummyProjects(t *testing.T) {
	base := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	page := GenerateDummyProjects(2, 5, base)
	if len(page) != 5 {
		t.Fatalf("expected 5 projects, got %d", len(page))
	}
	first := page[0]
	if first.ID != "proj_5" || first.Name != "Project Alpha 6" {
		t.Fatalf("unexpected first project %+v", first)
	}
	if first.Status != models.ProjectStatuses[5%len(models.ProjectStatuses)] {
		t.Fatalf("unexpected status %s", first.Status)
	}
	if !first.CreatedAt.Equal(base.Add(-5 * time.Minute)) {
		t.Fatalf("unexpected creation time %v", first.CreatedAt)
	}
	if len(first.TeamMembers) != 3 {
		t.Fatalf("expected sample team, got %v", first.TeamMembers)
	}
	if GenerateDummyProjects(0, 5, base) != nil {
		t.Fatalf("invalid page should yield nil")
	}
}

func TestSeedProjects(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	if err := db.SeedProjects(ctx, 25); err != nil {
		t.Fatalf("SeedProjects failed: %v", err)
	}
	page, err := db.GetProjects(ctx, 3, 10)
	if err != nil {
		t.Fatalf("GetProjects failed: %v", err)
	}
	if len(page) != 5 || page[0].ID != "proj_20" {
		t.Fatalf("expected proj_20..proj_24 on page 3, got %d starting %v", len(page), page)
	}
	if err := db.SeedProjects(ctx, 0); err != nil {
		t.Fatalf("SeedProjects(0) should be a no-op, got %v", err)
	}
}
