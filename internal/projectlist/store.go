package projectlist

import (
	"context"

	"github.com/christophertwo/aella/internal/models"
)

//go:generate mockgen -source=store.go -destination=mock_store_test.go -package=projectlist

// Store is the data access the controller depends on. Pages are 1-based.
type Store interface {
	GetProjects(ctx context.Context, page, pageSize int) ([]models.Project, error)
	// SearchProjects matches name or description case-insensitively.
	SearchProjects(ctx context.Context, query string, page, pageSize int) ([]models.Project, error)
}
