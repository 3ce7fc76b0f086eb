package projects

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/gophfolio/internal/dbx"
	"github.com/dmitrijs2005/gophfolio/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByOwner returns the owner's projects in display order. An owner
// without projects gets an empty slice.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Project, error) {
	query :=
		`SELECT owner_id, id, position, title, description, technologies,
		        repository_url, demo_url, thumbnail_url, images, completed_at, featured
		 FROM projects
		 WHERE owner_id = $1
		 ORDER BY position, id
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Project{}
	for rows.Next() {
		p := &models.Project{}
		var techs, images string
		if err := rows.Scan(&p.OwnerID, &p.ID, &p.Position, &p.Title, &p.Description, &techs,
			&p.RepositoryURL, &p.DemoURL, &p.ThumbnailURL, &images, &p.CompletedAt, &p.Featured); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if p.Technologies, err = decodeList(techs); err != nil {
			return nil, fmt.Errorf("project %s technologies: %w", p.ID, err)
		}
		if p.Images, err = decodeList(images); err != nil {
			return nil, fmt.Errorf("project %s images: %w", p.ID, err)
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Upsert inserts p or overwrites the row with the same owner and id.
func (r *PostgresRepository) Upsert(ctx context.Context, p *models.Project) error {
	query :=
		`INSERT INTO projects (owner_id, id, position, title, description, technologies,
		                       repository_url, demo_url, thumbnail_url, images, completed_at, featured)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (owner_id, id) DO UPDATE SET
		     position = EXCLUDED.position,
		     title = EXCLUDED.title,
		     description = EXCLUDED.description,
		     technologies = EXCLUDED.technologies,
		     repository_url = EXCLUDED.repository_url,
		     demo_url = EXCLUDED.demo_url,
		     thumbnail_url = EXCLUDED.thumbnail_url,
		     images = EXCLUDED.images,
		     completed_at = EXCLUDED.completed_at,
		     featured = EXCLUDED.featured,
		     updated_at = now()
		 `

	techs, err := encodeList(p.Technologies)
	if err != nil {
		return err
	}
	images, err := encodeList(p.Images)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		p.OwnerID, p.ID, p.Position, p.Title, p.Description, techs,
		p.RepositoryURL, p.DemoURL, p.ThumbnailURL, images, p.CompletedAt, p.Featured)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(b), nil
}

func decodeList(s string) ([]string, error) {
	out := []string{}
	if s == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
