package projects

import (
	"context"

	"github.com/dmitrijs2005/gophfolio/internal/client/models"
)

// Repository fetches the projects belonging to one owner, in display order.
type Repository interface {
	FetchProjects(ctx context.Context, ownerID string) ([]models.Project, error)
}

// Snapshotter is a Repository that can also persist a copy of a fetch result.
type Snapshotter interface {
	Repository
	SaveProjects(ctx context.Context, ownerID string, projects []models.Project) error
}

// RepositoryFunc adapts a plain function to Repository.
type RepositoryFunc func(ctx context.Context, ownerID string) ([]models.Project, error)

func (f RepositoryFunc) FetchProjects(ctx context.Context, ownerID string) ([]models.Project, error) {
	return f(ctx, ownerID)
}
