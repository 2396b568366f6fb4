package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/christophertwo/aella/internal/models"
	"github.com/christophertwo/aella/internal/util"
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (models.Project, error) {
	var (
		p         models.Project
		status    string
		createdAt string
		members   string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &status, &createdAt, &members); err != nil {
		return models.Project{}, err
	}
	p.Status = models.ProjectStatus(status)
	t, err := parseTime(createdAt)
	if err != nil {
		return models.Project{}, fmt.Errorf("created_at %q: %w", createdAt, err)
	}
	p.CreatedAt = t
	if p.TeamMembers, err = util.JSONToMembers(members); err != nil {
		return models.Project{}, fmt.Errorf("team_members: %w", err)
	}
	return p, nil
}

func (d *Database) queryProjects(ctx context.Context, q *ProjectQuery) ([]models.Project, error) {
	query, args := q.Build()
	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func validatePage(page, pageSize int) error {
	if page < 1 || pageSize <= 0 {
		return fmt.Errorf("%w: page=%d size=%d", ErrInvalidPage, page, pageSize)
	}
	return nil
}

// GetProjects returns one page of projects, newest first.
func (d *Database) GetProjects(ctx context.Context, page, pageSize int) ([]models.Project, error) {
	if err := validatePage(page, pageSize); err != nil {
		return nil, wrapErr(EntityProject, "list", "", err)
	}
	return withDBContextResult(d, ctx, func(ctx context.Context) ([]models.Project, error) {
		projects, err := d.queryProjects(ctx, NewProjectQuery().Page(page, pageSize))
		return projects, wrapErr(EntityProject, "list", "", err)
	})
}

// SearchProjects returns one page of projects whose name or description
// contains the query text, spacing included. status:<name> tokens narrow
// by status and are cut out of the text.
func (d *Database) SearchProjects(ctx context.Context, query string, page, pageSize int) ([]models.Project, error) {
	if err := validatePage(page, pageSize); err != nil {
		return nil, wrapErr(EntityProject, "search", "", err)
	}
	sq := util.ParseSearchQuery(query)
	return withDBContextResult(d, ctx, func(ctx context.Context) ([]models.Project, error) {
		projects, err := d.queryProjects(ctx, NewProjectQuery().WhereSearch(sq).Page(page, pageSize))
		return projects, wrapErr(EntityProject, "search", "", err)
	})
}

// GetAllProjects returns every project in list order.
func (d *Database) GetAllProjects(ctx context.Context) ([]models.Project, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) ([]models.Project, error) {
		projects, err := d.queryProjects(ctx, NewProjectQuery())
		return projects, wrapErr(EntityProject, "list", "", err)
	})
}

func (d *Database) GetProject(ctx context.Context, id string) (models.Project, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) (models.Project, error) {
		query, args := NewProjectQuery().Where("id = ?", id).Build()
		p, err := scanProject(d.DB.QueryRowContext(ctx, query, args...))
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNotFound
		}
		return p, wrapErr(EntityProject, "get", id, err)
	})
}

const upsertProjectSQL = `INSERT INTO projects (id, name, description, status, created_at, team_members)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		description = excluded.description,
		status = excluded.status,
		created_at = excluded.created_at,
		team_members = excluded.team_members`

func projectArgs(p models.Project) []interface{} {
	return []interface{}{p.ID, p.Name, p.Description, string(p.Status), formatTime(p.CreatedAt), util.MembersToJSON(p.TeamMembers)}
}

func normalizeProject(p models.Project) (models.Project, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return p, fmt.Errorf("%w: name is required", ErrInvalidData)
	}
	if p.Status == "" {
		p.Status = models.StatusInProgress
	}
	if !p.Status.Valid() {
		return p, fmt.Errorf("%w: status %q", ErrInvalidData, p.Status)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.TeamMembers == nil {
		p.TeamMembers = []string{}
	}
	return p, nil
}

// AddProject inserts or replaces a project. A missing ID or creation time
// is filled in and the stored project is returned.
func (d *Database) AddProject(ctx context.Context, project models.Project) (models.Project, error) {
	p, err := normalizeProject(project)
	if err != nil {
		return models.Project{}, wrapErr(EntityProject, "add", project.ID, err)
	}
	err = d.withDBContext(ctx, func(ctx context.Context) error {
		_, err := d.DB.ExecContext(ctx, upsertProjectSQL, projectArgs(p)...)
		return err
	})
	if err != nil {
		return models.Project{}, wrapErr(EntityProject, "add", p.ID, err)
	}
	return p, nil
}

// UpdateProject rewrites the mutable fields of an existing project.
func (d *Database) UpdateProject(ctx context.Context, project models.Project) error {
	if project.ID == "" {
		return wrapErr(EntityProject, "update", "", fmt.Errorf("%w: id is required", ErrInvalidData))
	}
	p, err := normalizeProject(project)
	if err != nil {
		return wrapErr(EntityProject, "update", project.ID, err)
	}
	return d.withDBContext(ctx, func(ctx context.Context) error {
		res, err := d.DB.ExecContext(ctx,
			"UPDATE projects SET name = ?, description = ?, status = ?, team_members = ? WHERE id = ?",
			p.Name, p.Description, string(p.Status), util.MembersToJSON(p.TeamMembers), p.ID)
		return wrapErr(EntityProject, "update", p.ID, requireAffected(res, err))
	})
}

// UpdateProjectStatus changes only the status column.
func (d *Database) UpdateProjectStatus(ctx context.Context, id string, status models.ProjectStatus) error {
	if !status.Valid() {
		return wrapErr(EntityProject, "update status", id, fmt.Errorf("%w: status %q", ErrInvalidData, status))
	}
	return d.withDBContext(ctx, func(ctx context.Context) error {
		res, err := d.DB.ExecContext(ctx, "UPDATE projects SET status = ? WHERE id = ?", string(status), id)
		return wrapErr(EntityProject, "update status", id, requireAffected(res, err))
	})
}

func (d *Database) DeleteProject(ctx context.Context, id string) error {
	return d.withDBContext(ctx, func(ctx context.Context) error {
		res, err := d.DB.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
		return wrapErr(EntityProject, "delete", id, requireAffected(res, err))
	})
}

// CountProjectsByStatus returns a count for every known status, zero included.
func (d *Database) CountProjectsByStatus(ctx context.Context) (map[models.ProjectStatus]int, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) (map[models.ProjectStatus]int, error) {
		counts := make(map[models.ProjectStatus]int, len(models.ProjectStatuses))
		for _, s := range models.ProjectStatuses {
			counts[s] = 0
		}
		rows, err := d.DB.QueryContext(ctx, "SELECT status, COUNT(*) FROM projects GROUP BY status")
		if err != nil {
			return nil, wrapErr(EntityProject, "count", "", err)
		}
		defer rows.Close()
		for rows.Next() {
			var status string
			var n int
			if err := rows.Scan(&status, &n); err != nil {
				return nil, wrapErr(EntityProject, "count", "", err)
			}
			counts[models.ProjectStatus(status)] = n
		}
		return counts, wrapErr(EntityProject, "count", "", rows.Err())
	})
}

func requireAffected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
