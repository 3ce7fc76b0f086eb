// Package loader fetches an owner's initial project collection. Only the most
// recently started load may deliver a result: starting a new load cancels the
// one in flight, and the superseded call reports common.ErrLoadSuperseded so
// its result is never applied.
package loader

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophfolio/internal/client/models"
	"github.com/dmitrijs2005/gophfolio/internal/common"
	"github.com/dmitrijs2005/gophfolio/internal/logging"
)

// Repository is the source the loader reads from.
type Repository interface {
	FetchProjects(ctx context.Context, ownerID string) ([]models.Project, error)
}

type Loader struct {
	repo Repository
	log  logging.Logger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

func New(repo Repository, log logging.Logger) *Loader {
	if log == nil {
		log = logging.Discard()
	}
	return &Loader{repo: repo, log: log}
}

// Load fetches ownerID's projects. A repository failure is returned as
// *common.LoadError. If another Load starts (or Cancel is called) before this
// one finishes, the result is discarded and common.ErrLoadSuperseded returned.
func (l *Loader) Load(ctx context.Context, ownerID string) ([]models.Project, error) {
	ctx, gen := l.begin(ctx)
	defer l.finish(gen)

	start := time.Now()
	l.log.Info(ctx, "loading projects", "owner", ownerID)

	projects, err := l.repo.FetchProjects(ctx, ownerID)

	if !l.current(gen) {
		l.log.Debug(ctx, "discarding superseded load", "owner", ownerID)
		return nil, common.ErrLoadSuperseded
	}

	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil, err
		}
		l.log.Error(ctx, "failed to load projects", "owner", ownerID, "error", err)
		return nil, &common.LoadError{OwnerID: ownerID, Err: err}
	}

	if projects == nil {
		projects = []models.Project{}
	}
	l.log.Info(ctx, "projects loaded", "owner", ownerID, "count", len(projects), "elapsed", time.Since(start))
	return projects, nil
}

// Cancel aborts the load in flight, if any. Its caller receives
// common.ErrLoadSuperseded.
func (l *Loader) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

func (l *Loader) begin(parent context.Context) (context.Context, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	ctx, cancel := context.WithCancel(parent)
	l.cancel = cancel
	return ctx, l.gen
}

func (l *Loader) current(gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen == gen
}

func (l *Loader) finish(gen uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.gen == gen && l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
