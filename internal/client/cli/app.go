package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophfolio/internal/client/client"
	"github.com/dmitrijs2005/gophfolio/internal/client/config"
	"github.com/dmitrijs2005/gophfolio/internal/client/loader"
	"github.com/dmitrijs2005/gophfolio/internal/client/manager"
	"github.com/dmitrijs2005/gophfolio/internal/client/profile"
	"github.com/dmitrijs2005/gophfolio/internal/client/repositories/projects"
	"github.com/dmitrijs2005/gophfolio/internal/logging"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	config  *config.Config
	manager *manager.Manager
	owner   profile.Settable
	cached  *projects.CachedRepository
	pinger  pinger
	closers []io.Closer
	reader  *bufio.Reader
	out     io.Writer
	log     logging.Logger

	mounts sync.WaitGroup
}

// NewApp builds the project source, profile provider and manager described
// by c. Resources it opens are released by Close.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	a := &App{config: c, reader: bufio.NewReader(os.Stdin), out: os.Stdout, log: log}

	repo, err := a.buildRepository(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	if c.TokenSecret != "" {
		a.owner = profile.NewTokenProvider(c.ProfileToken, []byte(c.TokenSecret))
	} else {
		a.owner = profile.NewStaticProvider(c.OwnerID)
	}

	confirm := &promptConfirmer{reader: a.reader, out: a.out, assumeYes: c.AssumeYes, interactive: stdinIsTerminal}
	a.manager = manager.New(a.owner, loader.New(repo, log), confirm, log)
	return a, nil
}

func (a *App) buildRepository(ctx context.Context) (projects.Repository, error) {
	var remote projects.Repository

	switch a.config.Repository {
	case config.RepositoryGRPC:
		gc, err := client.NewGRPCClient(a.config.ServerEndpointAddr, a.config.RequestTimeout)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, gc)
		a.pinger = gc
		remote = gc

	case config.RepositoryS3:
		s3c, err := projects.NewS3Client(ctx, projects.S3Config{
			Region:       a.config.S3Region,
			Bucket:       a.config.S3Bucket,
			BaseEndpoint: a.config.S3BaseEndpoint,
			AccessKey:    a.config.S3AccessKey,
			SecretKey:    a.config.S3SecretKey,
		})
		if err != nil {
			return nil, err
		}
		remote = projects.NewS3Repository(s3c, a.config.S3Bucket, a.config.S3Prefix)

	default:
		return projects.NewSampleRepository(a.config.SampleDelay), nil
	}

	if a.config.CachePath == "" {
		return remote, nil
	}

	db, err := client.OpenDatabase(ctx, a.config.CachePath)
	if err != nil {
		return nil, fmt.Errorf("open snapshot cache: %w", err)
	}
	a.closers = append(a.closers, db)
	a.cached = projects.NewCachedRepository(remote, projects.NewSQLiteRepository(db), a.log)
	return a.cached, nil
}

// Run mounts the manager in the background and blocks in the REPL until the
// user exits or ctx is canceled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		a.mounts.Wait()
	}()

	fmt.Fprintln(a.out, "Welcome to the portfolio manager (type 'help' for commands)")

	if a.pinger != nil && a.cached != nil && a.config.OnlineCheckInterval > 0 {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	a.remount(ctx)
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// remount reloads the owner's portfolio without blocking the REPL.
func (a *App) remount(ctx context.Context) {
	a.mounts.Add(1)
	go func() {
		defer a.mounts.Done()
		if err := a.manager.Mount(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.log.Error(ctx, "mount failed", "error", err)
		}
	}()
}

func (a *App) hasProfile() bool {
	return a.manager.Owner() != ""
}

func (a *App) status() string {
	switch a.manager.Status() {
	case manager.StatusNoProfile:
		return "(no profile)"
	case manager.StatusLoading:
		return fmt.Sprintf("(%s loading)", a.manager.Owner())
	}
	if a.cached != nil && a.cached.Mode() != projects.ModeUnknown {
		return fmt.Sprintf("(%s %s)", a.manager.Owner(), a.cached.Mode())
	}
	return fmt.Sprintf("(%s)", a.manager.Owner())
}

// StartOnlineStatusWatcher pings the backend every interval and records
// whether it is reachable until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.pinger.Ping(pctx)
			cancel()

			if err != nil {
				a.cached.SetMode(projects.ModeOffline)
			} else {
				a.cached.SetMode(projects.ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
