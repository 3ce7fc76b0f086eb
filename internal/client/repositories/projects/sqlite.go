package projects

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophfolio/internal/client/models"
	"github.com/dmitrijs2005/gophfolio/internal/common"
	"github.com/dmitrijs2005/gophfolio/internal/dbx"
)

// SQLiteRepository keeps the last successfully fetched collection of each
// owner. FetchProjects on an owner without a snapshot fails with
// common.ErrorNotFound.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) FetchProjects(ctx context.Context, ownerID string) ([]models.Project, error) {
	if _, err := r.SavedAt(ctx, ownerID); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, technologies, repository_url, demo_url,
		       thumbnail_url, images, completed_at, featured
		FROM projects
		WHERE owner_id = ?
		ORDER BY position`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot of %s: %w", ownerID, err)
	}
	defer rows.Close()

	result := make([]models.Project, 0)
	for rows.Next() {
		p := models.Project{OwnerID: ownerID}
		var techs, images, completedAt string
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &techs, &p.RepositoryURL, &p.DemoURL,
			&p.ThumbnailURL, &images, &completedAt, &p.Featured); err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		if err := json.Unmarshal([]byte(techs), &p.Technologies); err != nil {
			return nil, fmt.Errorf("project %s technologies: %w", p.ID, err)
		}
		if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
			return nil, fmt.Errorf("project %s images: %w", p.ID, err)
		}
		if p.CompletedAt, err = time.Parse(time.RFC3339Nano, completedAt); err != nil {
			return nil, fmt.Errorf("project %s completed_at: %w", p.ID, err)
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate project rows: %w", err)
	}

	return result, nil
}

// SaveProjects replaces the owner's snapshot with projects in one transaction.
func (r *SQLiteRepository) SaveProjects(ctx context.Context, ownerID string, projects []models.Project) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE owner_id = ?`, ownerID); err != nil {
			return fmt.Errorf("failed to clear snapshot of %s: %w", ownerID, err)
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO snapshots (owner_id, saved_at) VALUES (?, ?)
			ON CONFLICT(owner_id) DO UPDATE SET saved_at = excluded.saved_at
		`, ownerID, r.now().UTC().Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("failed to stamp snapshot of %s: %w", ownerID, err)
		}

		for i, p := range projects {
			if err := insertProject(ctx, tx, ownerID, i, p); err != nil {
				return err
			}
		}
		return nil
	})
}

// SavedAt reports when the owner's snapshot was last written.
func (r *SQLiteRepository) SavedAt(ctx context.Context, ownerID string) (time.Time, error) {
	var savedAt string
	err := r.db.QueryRowContext(ctx, `SELECT saved_at FROM snapshots WHERE owner_id = ?`, ownerID).Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, fmt.Errorf("snapshot of %s: %w", ownerID, common.ErrorNotFound)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read snapshot of %s: %w", ownerID, err)
	}
	t, err := time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("snapshot of %s saved_at: %w", ownerID, err)
	}
	return t, nil
}

func insertProject(ctx context.Context, tx dbx.DBTX, ownerID string, position int, p models.Project) error {
	techs, err := marshalList(p.Technologies)
	if err != nil {
		return err
	}
	images, err := marshalList(p.Images)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO projects (owner_id, id, position, title, description, technologies,
		                      repository_url, demo_url, thumbnail_url, images, completed_at, featured)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner_id, id) DO NOTHING
	`, ownerID, p.ID, position, p.Title, p.Description, techs,
		p.RepositoryURL, p.DemoURL, p.ThumbnailURL, images,
		p.CompletedAt.UTC().Format(time.RFC3339Nano), p.Featured)
	if err != nil {
		return fmt.Errorf("failed to insert project %s: %w", p.ID, err)
	}
	return nil
}

func marshalList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshal list: %w", err)
	}
	return string(b), nil
}
