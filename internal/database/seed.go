package database

import (
	"context"
	"fmt"
	"time"

	"github.com/christophertwo/aella/internal/models"
)

var dummyTeam = []string{"Ana", "Luis", "Eva"}

// GenerateDummyProjects builds sample projects for the 1-based page.
// IDs are proj_<index>; creation times step back one minute per index from
// base so list order follows index order.
func GenerateDummyProjects(page, pageSize int, base time.Time) []models.Project {
	if page < 1 || pageSize <= 0 {
		return nil
	}
	start := pageOffset(page, pageSize)
	projects := make([]models.Project, 0, pageSize)
	for i := start; i < start+pageSize; i++ {
		projects = append(projects, models.Project{
			ID:          fmt.Sprintf("proj_%d", i),
			Name:        fmt.Sprintf("Project Alpha %d", i+1),
			Description: fmt.Sprintf("Sample project number %d. The goal is to ship a key new feature.", i+1),
			Status:      models.ProjectStatuses[i%len(models.ProjectStatuses)],
			CreatedAt:   base.Add(-time.Duration(i) * time.Minute),
			TeamMembers: append([]string(nil), dummyTeam...),
		})
	}
	return projects
}

// SeedProjects stores n sample projects in one transaction.
func (d *Database) SeedProjects(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}
	projects := GenerateDummyProjects(1, n, time.Now())
	return d.withDBContext(ctx, func(ctx context.Context) error {
		tx, err := d.DB.BeginTx(ctx, nil)
		if err != nil {
			return wrapErr(EntityProject, "seed", "", err)
		}
		stmt, err := tx.PrepareContext(ctx, upsertProjectSQL)
		if err != nil {
			return rollbackWithLog(d.logger, tx, wrapErr(EntityProject, "seed", "", err))
		}
		defer stmt.Close()
		for _, p := range projects {
			if _, err := stmt.ExecContext(ctx, projectArgs(p)...); err != nil {
				return rollbackWithLog(d.logger, tx, wrapErr(EntityProject, "seed", p.ID, err))
			}
		}
		if err := tx.Commit(); err != nil {
			return wrapErr(EntityProject, "seed", "", err)
		}
		d.logger.Info("seeded projects", "count", n)
		return nil
	})
}
