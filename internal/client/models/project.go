// Package models defines the portfolio project entity and the value records
// used to create and update it.
package models

import (
	"slices"
	"time"
)

// Project is a single portfolio entry owned by a profile.
type Project struct {
	// ID is assigned on creation and never changes afterwards.
	ID string `json:"id"`
	// OwnerID references the owning profile; many projects share one owner.
	OwnerID string `json:"ownerId"`

	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`

	// Optional links; empty means absent.
	RepositoryURL string `json:"repositoryUrl,omitempty"`
	DemoURL       string `json:"demoUrl,omitempty"`
	ThumbnailURL  string `json:"thumbnailUrl,omitempty"`

	Images      []string  `json:"images"`
	CompletedAt time.Time `json:"completedAt"`
	Featured    bool      `json:"featured"`
}

// Clone returns a copy that shares no slices with p.
func (p Project) Clone() Project {
	c := p
	c.Technologies = cloneList(p.Technologies)
	c.Images = cloneList(p.Images)
	return c
}

// Draft holds the editable values of a project form.
type Draft struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	Technologies  []string `json:"technologies" validate:"min=1,dive,required"`
	RepositoryURL string   `json:"repositoryUrl"`
	DemoURL       string   `json:"demoUrl"`
	ThumbnailURL  string   `json:"thumbnailUrl"`
	Images        []string `json:"images"`
	Featured      bool     `json:"featured"`
}

// EmptyDraft is the reset value of a form: empty text, empty lists, not featured.
func EmptyDraft() Draft {
	return Draft{Technologies: []string{}, Images: []string{}}
}

// DraftFrom copies the editable fields of p into a draft.
func DraftFrom(p Project) Draft {
	return Draft{
		Title:         p.Title,
		Description:   p.Description,
		Technologies:  cloneList(p.Technologies),
		RepositoryURL: p.RepositoryURL,
		DemoURL:       p.DemoURL,
		ThumbnailURL:  p.ThumbnailURL,
		Images:        cloneList(p.Images),
		Featured:      p.Featured,
	}
}

// NewProject is a create request. CompletedAt and Featured are optional;
// the store fills in now and false respectively.
type NewProject struct {
	OwnerID       string
	Title         string
	Description   string
	Technologies  []string
	RepositoryURL string
	DemoURL       string
	ThumbnailURL  string
	Images        []string
	CompletedAt   *time.Time
	Featured      *bool
}

// NewProjectFromDraft builds a create request for owner from the form values.
func NewProjectFromDraft(ownerID string, d Draft) NewProject {
	featured := d.Featured
	return NewProject{
		OwnerID:       ownerID,
		Title:         d.Title,
		Description:   d.Description,
		Technologies:  cloneList(d.Technologies),
		RepositoryURL: d.RepositoryURL,
		DemoURL:       d.DemoURL,
		ThumbnailURL:  d.ThumbnailURL,
		Images:        cloneList(d.Images),
		Featured:      &featured,
	}
}

// Patch is a partial update. A nil field is not present and leaves the
// stored value untouched. ID and OwnerID are deliberately absent.
type Patch struct {
	Title         *string
	Description   *string
	Technologies  *[]string
	RepositoryURL *string
	DemoURL       *string
	ThumbnailURL  *string
	Images        *[]string
	CompletedAt   *time.Time
	Featured      *bool
}

// PatchFromDraft sets every field a form can edit.
func PatchFromDraft(d Draft) Patch {
	techs := cloneList(d.Technologies)
	images := cloneList(d.Images)
	return Patch{
		Title:         &d.Title,
		Description:   &d.Description,
		Technologies:  &techs,
		RepositoryURL: &d.RepositoryURL,
		DemoURL:       &d.DemoURL,
		ThumbnailURL:  &d.ThumbnailURL,
		Images:        &images,
		Featured:      &d.Featured,
	}
}

// ApplyPatch merges the present fields of patch onto p and returns the result.
// p itself is not modified.
func ApplyPatch(p Project, patch Patch) Project {
	out := p.Clone()
	if patch.Title != nil {
		out.Title = *patch.Title
	}
	if patch.Description != nil {
		out.Description = *patch.Description
	}
	if patch.Technologies != nil {
		out.Technologies = cloneList(*patch.Technologies)
	}
	if patch.RepositoryURL != nil {
		out.RepositoryURL = *patch.RepositoryURL
	}
	if patch.DemoURL != nil {
		out.DemoURL = *patch.DemoURL
	}
	if patch.ThumbnailURL != nil {
		out.ThumbnailURL = *patch.ThumbnailURL
	}
	if patch.Images != nil {
		out.Images = cloneList(*patch.Images)
	}
	if patch.CompletedAt != nil {
		out.CompletedAt = *patch.CompletedAt
	}
	if patch.Featured != nil {
		out.Featured = *patch.Featured
	}
	return out
}

func cloneList(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
