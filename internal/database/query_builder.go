package database

import (
	"fmt"
	"strings"

	"github.com/christophertwo/aella/internal/models"
	"github.com/christophertwo/aella/internal/util"
)

const projectColumns = "id, name, description, status, created_at, team_members"

// projectOrder keeps paging stable when created_at ties.
const projectOrder = "created_at DESC, id ASC"

type ProjectQuery struct {
	columns string
	filters []string
	args    []interface{}
	orderBy string
	limit   int
	offset  int
}

func NewProjectQuery() *ProjectQuery {
	return &ProjectQuery{columns: projectColumns, orderBy: projectOrder}
}

func (q *ProjectQuery) Where(filter string, args ...interface{}) *ProjectQuery {
	q.filters = append(q.filters, filter)
	q.args = append(q.args, args...)
	return q
}

func (q *ProjectQuery) WhereStatus(status models.ProjectStatus) *ProjectQuery {
	return q.Where("status = ?", string(status))
}

// WhereText matches name or description case-insensitively.
func (q *ProjectQuery) WhereText(text string) *ProjectQuery {
	if text == "" {
		return q
	}
	pattern := likePattern(text)
	return q.Where(`(name LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\')`, pattern, pattern)
}

// WhereStatusIn restricts to any of the given statuses. An empty list
// matches nothing.
func (q *ProjectQuery) WhereStatusIn(statuses []models.ProjectStatus) *ProjectQuery {
	if len(statuses) == 0 {
		return q.Where("1 = 0")
	}
	placeholders := make([]string, len(statuses))
	args := make([]interface{}, len(statuses))
	for i, s := range statuses {
		placeholders[i] = "?"
		args[i] = string(s)
	}
	return q.Where("status IN ("+strings.Join(placeholders, ", ")+")", args...)
}

// WhereSearch applies a parsed search query. Unknown status tokens are
// ignored; if every token is unknown the query matches nothing.
func (q *ProjectQuery) WhereSearch(sq util.SearchQuery) *ProjectQuery {
	if len(sq.Status) > 0 {
		var statuses []models.ProjectStatus
		for _, token := range sq.Status {
			if status, err := models.ParseProjectStatus(token); err == nil {
				statuses = append(statuses, status)
			}
		}
		q.WhereStatusIn(statuses)
	}
	return q.WhereText(sq.Substring())
}

func (q *ProjectQuery) OrderBy(orderBy string) *ProjectQuery {
	q.orderBy = orderBy
	return q
}

func (q *ProjectQuery) Limit(limit int) *ProjectQuery {
	q.limit = limit
	return q
}

func (q *ProjectQuery) Offset(offset int) *ProjectQuery {
	q.offset = offset
	return q
}

// Page sets LIMIT and OFFSET for a 1-based page.
func (q *ProjectQuery) Page(page, pageSize int) *ProjectQuery {
	return q.Limit(pageSize).Offset(pageOffset(page, pageSize))
}

func (q *ProjectQuery) Build() (string, []interface{}) {
	query := fmt.Sprintf("SELECT %s FROM projects", q.columns)
	if len(q.filters) > 0 {
		query += " WHERE " + strings.Join(q.filters, " AND ")
	}
	if q.orderBy != "" {
		query += " ORDER BY " + q.orderBy
	}
	if q.limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.limit)
		if q.offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", q.offset)
		}
	}
	return query, q.args
}
