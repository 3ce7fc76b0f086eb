// Package manager is the portfolio manager session: it resolves the owner,
// loads their projects in the background, and routes every user action
// through the entity store and the add/edit form.
package manager

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/gophfolio/internal/client/form"
	"github.com/dmitrijs2005/gophfolio/internal/client/models"
	"github.com/dmitrijs2005/gophfolio/internal/client/profile"
	"github.com/dmitrijs2005/gophfolio/internal/client/store"
	"github.com/dmitrijs2005/gophfolio/internal/client/view"
	"github.com/dmitrijs2005/gophfolio/internal/common"
	"github.com/dmitrijs2005/gophfolio/internal/logging"
)

type Status string

const (
	StatusNoProfile Status = "no-profile"
	StatusLoading   Status = "loading"
	StatusReady     Status = "ready"
)

// DeletePrompt is shown before a project is removed.
const DeletePrompt = "Are you sure you want to delete this project?"

// Loader fetches an owner's initial collection; see package loader.
type Loader interface {
	Load(ctx context.Context, ownerID string) ([]models.Project, error)
	Cancel()
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Manager is safe for concurrent use: a background Mount and REPL commands
// are serialised by one mutex.
type Manager struct {
	profile profile.Provider
	loader  Loader
	confirm Confirmer
	log     logging.Logger

	mu      sync.Mutex
	store   *store.Store
	form    *form.Controller
	ownerID  string
	status   Status
	loadErr  error
	mountGen uint64
}

func New(p profile.Provider, l Loader, c Confirmer, log logging.Logger, opts ...store.Option) *Manager {
	if log == nil {
		log = logging.Discard()
	}
	m := &Manager{
		profile: p,
		loader:  l,
		confirm: c,
		log:     log,
		store:   store.New(opts...),
		status:  StatusNoProfile,
	}
	m.form = form.NewController(m.store, func() string { return m.ownerID })
	return m
}

// Mount resolves the current profile and, when an owner is available, loads
// their projects. It blocks until the load finishes. A failed load leaves an
// empty collection and is logged, not returned. A Mount overtaken by a newer
// one is dropped without touching the manager, whether it was still reading
// the profile or already loading.
func (m *Manager) Mount(ctx context.Context) error {
	m.mu.Lock()
	m.mountGen++
	gen := m.mountGen
	m.mu.Unlock()

	prof, err := m.profile.Profile(ctx)
	if err != nil {
		m.log.Warn(ctx, "owner profile unavailable", "error", err)
		prof = profile.Profile{}
	}

	m.mu.Lock()
	if gen != m.mountGen {
		m.mu.Unlock()
		return nil
	}
	if !prof.Ready || prof.OwnerID == "" {
		m.loader.Cancel()
		m.clearLocked()
		m.ownerID = ""
		m.status = StatusNoProfile
		m.mu.Unlock()
		return nil
	}
	if prof.OwnerID != m.ownerID {
		m.clearLocked()
	}
	owner := prof.OwnerID
	m.ownerID = owner
	m.status = StatusLoading
	m.loadErr = nil
	m.mu.Unlock()

	projects, err := m.loader.Load(ctx, owner)

	m.mu.Lock()
	defer m.mu.Unlock()

	if errors.Is(err, common.ErrLoadSuperseded) || gen != m.mountGen {
		return nil
	}

	var le *common.LoadError
	switch {
	case errors.As(err, &le):
		m.log.Error(ctx, "initial project load failed, starting empty", "owner", owner, "error", err)
		m.store.Replace(nil)
		m.loadErr = err
		m.status = StatusReady
		return nil
	case err != nil:
		// Interrupted; keep whatever the store holds.
		m.status = StatusReady
		return err
	}

	m.store.Replace(projects)
	m.status = StatusReady
	return nil
}

func (m *Manager) clearLocked() {
	m.store.Replace(nil)
	m.form.Cancel()
	m.loadErr = nil
}

func (m *Manager) requireOwnerLocked() error {
	if m.ownerID == "" {
		return common.ErrNoProfile
	}
	return nil
}

// requireWritableLocked additionally rejects changes while a load is pending.
func (m *Manager) requireWritableLocked() error {
	if err := m.requireOwnerLocked(); err != nil {
		return err
	}
	if m.status == StatusLoading {
		return common.ErrLoading
	}
	return nil
}

func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Owner returns the current owner id, empty when no profile is available.
func (m *Manager) Owner() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ownerID
}

// LoadError returns the failure of the last initial load, if it failed.
func (m *Manager) LoadError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadErr
}

func (m *Manager) Projects() []models.Project {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.List()
}

func (m *Manager) Get(id string) (models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireOwnerLocked(); err != nil {
		return models.Project{}, err
	}
	p, ok := m.store.Get(id)
	if !ok {
		return models.Project{}, &common.NotFoundError{ID: id}
	}
	return p, nil
}

func (m *Manager) Featured() []models.Project {
	m.mu.Lock()
	defer m.mu.Unlock()
	return view.Featured(m.store.List())
}

func (m *Manager) All() []view.Card {
	m.mu.Lock()
	defer m.mu.Unlock()
	return view.All(m.store.List())
}

func (m *Manager) FormState() form.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.form.State()
}

func (m *Manager) Draft() models.Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.form.Draft()
}

func (m *Manager) OpenCreate() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireWritableLocked(); err != nil {
		return err
	}
	m.form.OpenCreate()
	return nil
}

func (m *Manager) OpenEdit(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireWritableLocked(); err != nil {
		return err
	}
	p, ok := m.store.Get(id)
	if !ok {
		return &common.NotFoundError{ID: id}
	}
	m.form.OpenEdit(p)
	return nil
}

// ChangeField sets one draft field by its form name (see form.Fields).
func (m *Manager) ChangeField(name string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireOwnerLocked(); err != nil {
		return err
	}
	f, err := form.ParseField(name)
	if err != nil {
		return err
	}
	return m.form.ChangeField(f, value)
}

func (m *Manager) Submit() (models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireWritableLocked(); err != nil {
		return models.Project{}, err
	}
	p, err := m.form.Submit()
	if err != nil {
		return models.Project{}, err
	}
	m.log.Info(context.Background(), "project saved", "owner", m.ownerID, "id", p.ID)
	return p, nil
}

func (m *Manager) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.form.Cancel()
}

// Delete asks for confirmation and removes the project when the user agrees.
// It reports whether the project was removed. An id the store does not hold
// yields *common.NotFoundError without prompting.
func (m *Manager) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	if err := m.requireWritableLocked(); err != nil {
		m.mu.Unlock()
		return false, err
	}
	if _, ok := m.store.Get(id); !ok {
		m.mu.Unlock()
		return false, &common.NotFoundError{ID: id}
	}
	owner := m.ownerID
	m.mu.Unlock()

	// The prompt blocks on user input, so it runs outside the lock.
	ok, err := m.confirm.Confirm(ctx, DeletePrompt)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ownerID != owner {
		return false, common.ErrNoProfile
	}
	if m.status == StatusLoading {
		return false, common.ErrLoading
	}
	m.store.Delete(id)
	m.log.Info(ctx, "project deleted", "owner", owner, "id", id)
	return true, nil
}
