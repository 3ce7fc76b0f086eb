package projects

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophfolio/internal/dbx"
	"github.com/dmitrijs2005/gophfolio/internal/server/models"
)

// ReadSeedFile parses a JSON array of projects. Positions follow the order
// of the file within each owner.
func ReadSeedFile(path string) ([]*models.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}

	var items []*models.Project
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}

	next := map[string]int{}
	for i, p := range items {
		if p == nil || p.OwnerID == "" || p.ID == "" {
			return nil, fmt.Errorf("seed %s: item %d needs ownerId and id", path, i)
		}
		p.Position = next[p.OwnerID]
		next[p.OwnerID]++
	}
	return items, nil
}

// Import upserts all projects in a single transaction.
func Import(ctx context.Context, db *sql.DB, items []*models.Project) error {
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewPostgresRepository(tx)
		for _, p := range items {
			if err := repo.Upsert(ctx, p); err != nil {
				return fmt.Errorf("import %s/%s: %w", p.OwnerID, p.ID, err)
			}
		}
		return nil
	})
}
