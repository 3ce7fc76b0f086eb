package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophfolio/internal/client/form"
	"github.com/dmitrijs2005/gophfolio/internal/client/manager"
	"github.com/dmitrijs2005/gophfolio/internal/client/models"
	"github.com/dmitrijs2005/gophfolio/internal/client/view"
)

const placeholderText = "No owner profile. Sign in with 'owner <id>' to manage your portfolio."

// List prints every project as a card with a short technology preview.
func (a *App) List(ctx context.Context) error {
	if !a.showCollection() {
		return nil
	}
	cards := a.manager.All()
	if len(cards) == 0 {
		fmt.Fprintln(a.out, "No projects yet. Use 'new' to add one.")
		return nil
	}
	for _, c := range cards {
		a.printCard(c)
	}
	return nil
}

// Featured prints the featured projects only.
func (a *App) Featured(ctx context.Context) error {
	if !a.showCollection() {
		return nil
	}
	featured := a.manager.Featured()
	if len(featured) == 0 {
		fmt.Fprintln(a.out, "No featured projects.")
		return nil
	}
	for _, p := range featured {
		a.printCard(view.NewCard(p))
	}
	return nil
}

// showCollection prints the no-profile or loading notice in place of the
// collection and reports whether the collection should be printed.
func (a *App) showCollection() bool {
	switch a.manager.Status() {
	case manager.StatusNoProfile:
		fmt.Fprintln(a.out, placeholderText)
		return false
	case manager.StatusLoading:
		fmt.Fprintln(a.out, "Loading projects...")
		return false
	}
	if err := a.manager.LoadError(); err != nil {
		fmt.Fprintln(a.out, "Projects could not be loaded; starting with an empty portfolio.")
	}
	return true
}

func (a *App) printCard(c view.Card) {
	star := ""
	if c.Project.Featured {
		star = " *"
	}
	fmt.Fprintf(a.out, "[%s] %s%s\n", c.Project.ID, c.Project.Title, star)
	fmt.Fprintf(a.out, "    %s\n", firstLine(c.Project.Description))
	techs := strings.Join(c.VisibleTechnologies, ", ")
	if c.HiddenTechnologies > 0 {
		techs += fmt.Sprintf(" +%d more", c.HiddenTechnologies)
	}
	fmt.Fprintf(a.out, "    %s\n", techs)
}

func (a *App) Show(ctx context.Context, id string) error {
	p, err := a.manager.Get(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "ID:           %s\n", p.ID)
	fmt.Fprintf(a.out, "Title:        %s\n", p.Title)
	fmt.Fprintf(a.out, "Description:  %s\n", p.Description)
	fmt.Fprintf(a.out, "Technologies: %s\n", models.FormatCommaList(p.Technologies))
	printOptional(a, "Repository:   ", p.RepositoryURL)
	printOptional(a, "Demo:         ", p.DemoURL)
	printOptional(a, "Thumbnail:    ", p.ThumbnailURL)
	if len(p.Images) > 0 {
		fmt.Fprintf(a.out, "Images:       %s\n", models.FormatCommaList(p.Images))
	}
	fmt.Fprintf(a.out, "Completed:    %s\n", p.CompletedAt.Format("2006-01-02"))
	fmt.Fprintf(a.out, "Featured:     %t\n", p.Featured)
	return nil
}

func printOptional(a *App, label, value string) {
	if value != "" {
		fmt.Fprintf(a.out, "%s%s\n", label, value)
	}
}

// New opens the create form and walks through its fields.
func (a *App) New(ctx context.Context) error {
	if err := a.manager.OpenCreate(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "New project. Press Enter to skip a field.")
	return a.fillDraft()
}

// Edit opens the form on an existing project and walks through its fields.
func (a *App) Edit(ctx context.Context, id string) error {
	if err := a.manager.OpenEdit(id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Editing project. Press Enter to keep a value, '-' to clear it.")
	return a.fillDraft()
}

type draftStep struct {
	field     form.Field
	label     string
	current   string
	multiline bool
}

func draftSteps(d models.Draft) []draftStep {
	return []draftStep{
		{field: form.FieldTitle, label: "Title", current: d.Title},
		{field: form.FieldDescription, label: "Description", current: d.Description, multiline: true},
		{field: form.FieldTechnologies, label: "Technologies (comma separated)", current: models.FormatCommaList(d.Technologies)},
		{field: form.FieldRepositoryURL, label: "Repository URL", current: d.RepositoryURL},
		{field: form.FieldDemoURL, label: "Demo URL", current: d.DemoURL},
		{field: form.FieldThumbnailURL, label: "Thumbnail URL", current: d.ThumbnailURL},
		{field: form.FieldImages, label: "Image URLs (comma separated)", current: models.FormatCommaList(d.Images)},
		{field: form.FieldFeatured, label: "Featured (yes/no)", current: strconv.FormatBool(d.Featured)},
	}
}

func (a *App) fillDraft() error {
	for _, s := range draftSteps(a.manager.Draft()) {
		prompt := s.label
		if s.current != "" {
			prompt += " [" + firstLine(s.current) + "]"
		}

		var value string
		var err error
		if s.multiline {
			value, err = GetMultiline(a.reader, prompt, a.out)
		} else {
			value, err = GetSimpleText(a.reader, prompt, a.out)
		}
		if err != nil {
			return err
		}

		switch value {
		case "":
			continue
		case "-":
			value = ""
		}
		if s.field == form.FieldFeatured {
			value = normaliseYesNo(value)
		}
		if err := a.manager.ChangeField(string(s.field), value); err != nil {
			fmt.Fprintln(a.out, describeError(err))
		}
	}

	if err := a.Draft(context.Background()); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Type 'save' to submit, 'set <field> <value>' to change a field, or 'cancel'.")
	return nil
}

func normaliseYesNo(v string) string {
	switch strings.ToLower(v) {
	case "y", "yes":
		return "true"
	case "n", "no", "":
		return "false"
	}
	return v
}

func (a *App) Set(ctx context.Context, field, value string) error {
	f, err := form.ParseField(field)
	if err != nil {
		return err
	}
	if f == form.FieldFeatured {
		value = normaliseYesNo(value)
	}
	return a.manager.ChangeField(string(f), value)
}

// Draft prints the values currently held by the open form.
func (a *App) Draft(ctx context.Context) error {
	st := a.manager.FormState()
	fmt.Fprintf(a.out, "Form: %s\n", st)
	if _, closed := st.(form.Closed); closed {
		return nil
	}
	for _, s := range draftSteps(a.manager.Draft()) {
		fmt.Fprintf(a.out, "  %-14s %s\n", string(s.field)+":", s.current)
	}
	return nil
}

func (a *App) Save(ctx context.Context) error {
	p, err := a.manager.Submit()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved project [%s] %s\n", p.ID, p.Title)
	return nil
}

func (a *App) Cancel(ctx context.Context) error {
	a.manager.Cancel()
	fmt.Fprintln(a.out, "Form closed.")
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	deleted, err := a.manager.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted {
		fmt.Fprintf(a.out, "Deleted project %s\n", id)
	} else {
		fmt.Fprintln(a.out, "Kept project", id)
	}
	return nil
}

// Owner switches to another owner (an id, or a session token when token
// verification is configured) and reloads. Without a value it prints the
// current owner; "-" signs out.
func (a *App) Owner(ctx context.Context, value string) error {
	if value == "" {
		if owner := a.manager.Owner(); owner != "" {
			fmt.Fprintln(a.out, "Owner:", owner)
		} else {
			fmt.Fprintln(a.out, placeholderText)
		}
		return nil
	}
	if value == "-" {
		value = ""
	}
	a.owner.Set(value)
	a.remount(ctx)
	fmt.Fprintln(a.out, "Loading portfolio...")
	return nil
}

func (a *App) Reload(ctx context.Context) error {
	a.remount(ctx)
	fmt.Fprintln(a.out, "Reloading portfolio...")
	return nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
