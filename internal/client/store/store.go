// Package store keeps the in-memory collection of portfolio projects for
// one manager session. It performs no I/O.
package store

import (
	"slices"
	"time"

	"github.com/dmitrijs2005/gophfolio/internal/client/models"
	"github.com/dmitrijs2005/gophfolio/internal/common"
	"github.com/google/uuid"
)

// Store is an ordered collection of projects with unique ids.
// It is not safe for concurrent use; the manager serialises access.
type Store struct {
	items []models.Project
	now   func() time.Time
	newID func() string
}

type Option func(*Store)

// WithClock replaces time.Now for defaulting CompletedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func New(opts ...Option) *Store {
	s := &Store{now: time.Now, newID: uuid.NewString}
	for _, o := range opts {
		o(s)
	}
	return s
}

// List returns a copy of the collection in insertion order.
func (s *Store) List() []models.Project {
	out := make([]models.Project, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, p.Clone())
	}
	return out
}

func (s *Store) Len() int {
	return len(s.items)
}

// Get returns the project with the given id.
func (s *Store) Get(id string) (models.Project, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Project{}, false
	}
	return s.items[i].Clone(), true
}

// Create validates the request, assigns a fresh id, applies defaults and
// appends the project.
func (s *Store) Create(np models.NewProject) (models.Project, error) {
	if err := validateNew(np); err != nil {
		return models.Project{}, err
	}

	p := models.Project{
		ID:            s.freshID(),
		OwnerID:       np.OwnerID,
		Title:         np.Title,
		Description:   np.Description,
		Technologies:  slices.Clone(np.Technologies),
		RepositoryURL: np.RepositoryURL,
		DemoURL:       np.DemoURL,
		ThumbnailURL:  np.ThumbnailURL,
		Images:        slices.Clone(np.Images),
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if np.CompletedAt != nil {
		p.CompletedAt = *np.CompletedAt
	} else {
		p.CompletedAt = s.now()
	}
	if np.Featured != nil {
		p.Featured = *np.Featured
	}

	s.items = append(s.items, p)
	return p.Clone(), nil
}

// Update merges patch onto the project with the given id.
func (s *Store) Update(id string, patch models.Patch) (models.Project, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Project{}, &common.NotFoundError{ID: id}
	}
	s.items[i] = models.ApplyPatch(s.items[i], patch)
	return s.items[i].Clone(), nil
}

// Delete removes the project with the given id. Absent ids are ignored.
func (s *Store) Delete(id string) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.items = slices.Delete(s.items, i, i+1)
}

// Replace swaps the whole collection, e.g. after the initial load. Later
// duplicates of an id are dropped so ids stay unique.
func (s *Store) Replace(projects []models.Project) {
	seen := make(map[string]struct{}, len(projects))
	items := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		items = append(items, p.Clone())
	}
	s.items = items
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(p models.Project) bool { return p.ID == id })
}

// freshID retries until the generator yields an id not already in the store.
func (s *Store) freshID() string {
	for {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}

func validateNew(np models.NewProject) error {
	switch {
	case np.Title == "":
		return &common.ValidationError{Field: "title", Message: "is required"}
	case np.Description == "":
		return &common.ValidationError{Field: "description", Message: "is required"}
	case len(np.Technologies) == 0:
		return &common.ValidationError{Field: "technologies", Message: "at least one is required"}
	}
	return nil
}
