package projects

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/gophfolio/internal/client/models"
	"github.com/dmitrijs2005/gophfolio/internal/common"
	"github.com/dmitrijs2005/gophfolio/internal/logging"
)

type Mode string

const (
	ModeUnknown Mode = "unknown"
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// CachedRepository reads from a remote source and keeps a local snapshot of
// every successful result. When the remote fails, the owner's snapshot is
// served instead, if one exists; otherwise the remote error is returned.
type CachedRepository struct {
	remote    Repository
	snapshots Snapshotter
	log       logging.Logger

	mu   sync.RWMutex
	mode Mode
}

func NewCachedRepository(remote Repository, snapshots Snapshotter, log logging.Logger) *CachedRepository {
	if log == nil {
		log = logging.Discard()
	}
	return &CachedRepository{remote: remote, snapshots: snapshots, log: log, mode: ModeUnknown}
}

func (r *CachedRepository) FetchProjects(ctx context.Context, ownerID string) ([]models.Project, error) {
	projects, err := r.remote.FetchProjects(ctx, ownerID)
	if err == nil {
		r.SetMode(ModeOnline)
		if saveErr := r.snapshots.SaveProjects(ctx, ownerID, projects); saveErr != nil {
			r.log.Warn(ctx, "failed to save project snapshot", "owner", ownerID, "error", saveErr)
		}
		return projects, nil
	}

	// A canceled fetch says nothing about the backend.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, err
	}

	r.SetMode(ModeOffline)

	cached, snapErr := r.snapshots.FetchProjects(ctx, ownerID)
	if snapErr != nil {
		if !errors.Is(snapErr, common.ErrorNotFound) {
			r.log.Warn(ctx, "failed to read project snapshot", "owner", ownerID, "error", snapErr)
		}
		return nil, err
	}

	r.log.Warn(ctx, "backend unavailable, serving cached projects", "owner", ownerID, "error", err, "count", len(cached))
	return cached, nil
}

// Mode reports whether the last fetch reached the remote source.
func (r *CachedRepository) Mode() Mode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mode
}

// SetMode records connectivity; it is also fed by the CLI's status watcher.
func (r *CachedRepository) SetMode(mode Mode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.mode != mode {
		r.log.Info(context.Background(), "repository mode changed", "from", string(r.mode), "to", string(mode))
		r.mode = mode
	}
}
