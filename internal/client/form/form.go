// Package form implements the add/edit project form as an explicit state
// machine: Closed, Creating, or Editing a known project, plus the draft values
// the user is typing.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/gophfolio/internal/client/models"
	"github.com/dmitrijs2005/gophfolio/internal/common"
	"github.com/go-playground/validator/v10"
)

// ProjectStore is the part of the entity store the form commits to.
type ProjectStore interface {
	Create(np models.NewProject) (models.Project, error)
	Update(id string, patch models.Patch) (models.Project, error)
}

// OwnerFunc reports the profile new projects are created for; empty means
// no profile is available.
type OwnerFunc func() string

type Controller struct {
	store    ProjectStore
	owner    OwnerFunc
	validate *validator.Validate
	state    State
	draft    models.Draft
}

func NewController(store ProjectStore, owner OwnerFunc) *Controller {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Controller{
		store:    store,
		owner:    owner,
		validate: v,
		state:    Closed{},
		draft:    models.EmptyDraft(),
	}
}

func (c *Controller) State() State {
	return c.state
}

// Draft returns a copy of the current draft values.
func (c *Controller) Draft() models.Draft {
	d := c.draft
	d.Technologies = append([]string{}, c.draft.Technologies...)
	d.Images = append([]string{}, c.draft.Images...)
	return d
}

// OpenCreate starts a blank draft, discarding whatever was in progress.
func (c *Controller) OpenCreate() {
	c.state = Creating{}
	c.draft = models.EmptyDraft()
}

// OpenEdit loads p into the draft and targets it for update.
func (c *Controller) OpenEdit(p models.Project) {
	c.state = Editing{TargetID: p.ID}
	c.draft = models.DraftFrom(p)
}

// ChangeField updates exactly one draft field. No required-field checks run here.
func (c *Controller) ChangeField(f Field, value any) error {
	if _, closed := c.state.(Closed); closed {
		return common.ErrFormClosed
	}
	next := c.Draft()
	if err := setField(&next, f, value); err != nil {
		return err
	}
	c.draft = next
	return nil
}

// Submit commits the draft. On success the form closes and the draft resets;
// on any failure the state and draft are kept so nothing typed is lost.
func (c *Controller) Submit() (models.Project, error) {
	switch st := c.state.(type) {
	case Creating:
		if err := c.validateDraft(); err != nil {
			return models.Project{}, err
		}
		owner := c.owner()
		if owner == "" {
			return models.Project{}, common.ErrNoProfile
		}
		p, err := c.store.Create(models.NewProjectFromDraft(owner, c.draft))
		if err != nil {
			return models.Project{}, fmt.Errorf("create project: %w", err)
		}
		c.reset()
		return p, nil

	case Editing:
		if err := c.validateDraft(); err != nil {
			return models.Project{}, err
		}
		p, err := c.store.Update(st.TargetID, models.PatchFromDraft(c.draft))
		if err != nil {
			return models.Project{}, fmt.Errorf("update project: %w", err)
		}
		c.reset()
		return p, nil
	}
	return models.Project{}, common.ErrFormClosed
}

// Cancel discards the draft. Calling it while closed changes nothing.
func (c *Controller) Cancel() {
	c.reset()
}

func (c *Controller) reset() {
	c.state = Closed{}
	c.draft = models.EmptyDraft()
}

func (c *Controller) validateDraft() error {
	err := c.validate.Struct(c.draft)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &common.ValidationError{Field: fe.Field(), Message: message(fe)}
	}
	return fmt.Errorf("%w: %v", common.ErrValidation, err)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return "at least one is required"
	case "required":
		return "is required"
	}
	return fmt.Sprintf("failed on '%s' validation", fe.Tag())
}
