package projects

import (
	"context"

	"github.com/dmitrijs2005/gophfolio/internal/server/models"
)

type Repository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Project, error)
	Upsert(ctx context.Context, p *models.Project) error
}
