package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophfolio/internal/client/form"
	"github.com/dmitrijs2005/gophfolio/internal/client/loader"
	"github.com/dmitrijs2005/gophfolio/internal/client/manager"
	"github.com/dmitrijs2005/gophfolio/internal/client/models"
	"github.com/dmitrijs2005/gophfolio/internal/client/profile"
	"github.com/dmitrijs2005/gophfolio/internal/client/repositories/projects"
	"github.com/dmitrijs2005/gophfolio/internal/common"
	"github.com/dmitrijs2005/gophfolio/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, owner string, repo projects.Repository, input ...string) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader(strings.Join(input, "\n") + "\n"))
	prov := profile.NewStaticProvider(owner)
	confirm := &promptConfirmer{reader: reader, out: &out, interactive: func() bool { return true }}

	a := &App{
		owner:   prov,
		reader:  reader,
		out:     &out,
		log:     logging.Discard(),
		manager: manager.New(prov, loader.New(repo, logging.Discard()), confirm, logging.Discard()),
	}
	require.NoError(t, a.manager.Mount(context.Background()))
	return a, &out
}

func TestList_PlaceholderWithoutProfile(t *testing.T) {
	a, out := newTestApp(t, "", projects.NewSampleRepository(0))

	require.NoError(t, a.List(context.Background()))
	assert.Contains(t, out.String(), placeholderText)
	assert.False(t, a.hasProfile())
	assert.Equal(t, "(no profile)", a.status())
}

func TestList_ShowsCardsWithOverflow(t *testing.T) {
	a, out := newTestApp(t, "u1", projects.NewSampleRepository(0))

	require.NoError(t, a.List(context.Background()))
	s := out.String()
	assert.Contains(t, s, "[1] E-commerce Platform *")
	assert.Contains(t, s, "React, Node.js, MongoDB +1 more")
	assert.Contains(t, s, "[2] Task Management App\n")
	assert.Contains(t, s, "Vue.js, Firebase, Tailwind CSS\n")
	assert.Equal(t, "(u1)", a.status())
}

func TestList_EmptyAfterLoadFailure(t *testing.T) {
	repo := projects.RepositoryFunc(func(context.Context, string) ([]models.Project, error) {
		return nil, errors.New("down")
	})
	a, out := newTestApp(t, "u1", repo)

	require.NoError(t, a.List(context.Background()))
	assert.Contains(t, out.String(), "Projects could not be loaded")
	assert.Contains(t, out.String(), "No projects yet")
}

func TestFeatured(t *testing.T) {
	a, out := newTestApp(t, "u1", projects.NewSampleRepository(0))

	require.NoError(t, a.Featured(context.Background()))
	assert.Contains(t, out.String(), "E-commerce Platform")
	assert.NotContains(t, out.String(), "Task Management App")
}

func TestShow(t *testing.T) {
	a, out := newTestApp(t, "u1", projects.NewSampleRepository(0))

	require.NoError(t, a.Show(context.Background(), "1"))
	s := out.String()
	assert.Contains(t, s, "Technologies: React, Node.js, MongoDB, Stripe")
	assert.Contains(t, s, "Demo:         https://ecommerce-demo.com")
	assert.Contains(t, s, "Completed:    2024-01-15")

	require.ErrorIs(t, a.Show(context.Background(), "nope"), common.ErrorNotFound)
}

func TestNew_GuidedPromptsThenSave(t *testing.T) {
	a, out := newTestApp(t, "u1", projects.NewSampleRepository(0),
		"Portfolio site",
		"Personal site", "",
		"Go, HTMX, ",
		"https://github.com/u/site",
		"", "", "",
		"yes",
	)

	require.NoError(t, a.New(context.Background()))
	assert.Equal(t, form.Creating{}, a.manager.FormState())
	d := a.manager.Draft()
	assert.Equal(t, "Portfolio site", d.Title)
	assert.Equal(t, []string{"Go", "HTMX"}, d.Technologies)
	assert.True(t, d.Featured)
	assert.Contains(t, out.String(), "Type 'save' to submit")

	require.NoError(t, a.Save(context.Background()))
	assert.Contains(t, out.String(), "Saved project [")
	assert.Len(t, a.manager.Projects(), 3)
	assert.Len(t, a.manager.Featured(), 2)
}

func TestNew_MissingTitleKeepsForm(t *testing.T) {
	a, _ := newTestApp(t, "u1", projects.NewSampleRepository(0),
		"", "Desc", "", "Go", "", "", "", "", "")

	require.NoError(t, a.New(context.Background()))

	err := a.Save(context.Background())
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title", ve.Field)

	require.NoError(t, a.Set(context.Background(), "Title", "Fixed"))
	require.NoError(t, a.Save(context.Background()))
	assert.Equal(t, form.Closed{}, a.manager.FormState())
}

func TestEdit_KeepAndClearValues(t *testing.T) {
	// Keep everything except the repository URL, which "-" clears.
	a, _ := newTestApp(t, "u1", projects.NewSampleRepository(0),
		"", "", "", "-", "", "", "", "")

	require.NoError(t, a.Edit(context.Background(), "1"))
	require.NoError(t, a.Save(context.Background()))

	p, err := a.manager.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "E-commerce Platform", p.Title)
	assert.Empty(t, p.RepositoryURL)
	assert.Equal(t, "https://ecommerce-demo.com", p.DemoURL)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), p.CompletedAt)
}

func TestEdit_UnknownProject(t *testing.T) {
	a, _ := newTestApp(t, "u1", projects.NewSampleRepository(0))
	require.ErrorIs(t, a.Edit(context.Background(), "nope"), common.ErrorNotFound)
}

func TestSet_FeaturedAcceptsYesNo(t *testing.T) {
	a, _ := newTestApp(t, "u1", projects.NewSampleRepository(0))
	require.NoError(t, a.manager.OpenEdit("2"))

	require.NoError(t, a.Set(context.Background(), "featured", "y"))
	assert.True(t, a.manager.Draft().Featured)

	require.ErrorIs(t, a.Set(context.Background(), "featured", "maybe"), common.ErrFieldType)
	require.ErrorIs(t, a.Set(context.Background(), "colour", "red"), common.ErrUnknownField)
}

func TestSet_WithoutOpenForm(t *testing.T) {
	a, _ := newTestApp(t, "u1", projects.NewSampleRepository(0))
	require.ErrorIs(t, a.Set(context.Background(), "title", "x"), common.ErrFormClosed)
}

func TestDraftAndCancel(t *testing.T) {
	a, out := newTestApp(t, "u1", projects.NewSampleRepository(0))

	require.NoError(t, a.Draft(context.Background()))
	assert.Contains(t, out.String(), "Form: closed")

	require.NoError(t, a.manager.OpenEdit("1"))
	require.NoError(t, a.Draft(context.Background()))
	assert.Contains(t, out.String(), "Form: editing 1")
	assert.Contains(t, out.String(), "title:")

	require.NoError(t, a.Cancel(context.Background()))
	assert.Equal(t, form.Closed{}, a.manager.FormState())
}

func TestDelete_ConfirmAndDecline(t *testing.T) {
	a, out := newTestApp(t, "u1", projects.NewSampleRepository(0), "n", "y")

	require.NoError(t, a.Delete(context.Background(), "1"))
	assert.Contains(t, out.String(), "Kept project 1")
	assert.Len(t, a.manager.Projects(), 2)

	require.NoError(t, a.Delete(context.Background(), "1"))
	assert.Contains(t, out.String(), "Deleted project 1")
	assert.Len(t, a.manager.Projects(), 1)
	assert.Contains(t, out.String(), manager.DeletePrompt)
}

func TestOwner_SwitchesAndReloads(t *testing.T) {
	a, out := newTestApp(t, "", projects.NewSampleRepository(0))

	require.NoError(t, a.Owner(context.Background(), ""))
	assert.Contains(t, out.String(), placeholderText)

	require.NoError(t, a.Owner(context.Background(), "u2"))
	a.mounts.Wait()
	assert.Equal(t, "u2", a.manager.Owner())
	assert.Equal(t, manager.StatusReady, a.manager.Status())

	require.NoError(t, a.Owner(context.Background(), ""))
	assert.Contains(t, out.String(), "Owner: u2")

	require.NoError(t, a.Owner(context.Background(), "-"))
	a.mounts.Wait()
	assert.Equal(t, manager.StatusNoProfile, a.manager.Status())
}

func TestReload(t *testing.T) {
	a, _ := newTestApp(t, "u1", projects.NewSampleRepository(0), "y")
	deleted, err := a.manager.Delete(context.Background(), "1")
	require.NoError(t, err)
	require.True(t, deleted)
	require.Len(t, a.manager.Projects(), 1)

	require.NoError(t, a.Reload(context.Background()))
	a.mounts.Wait()
	assert.Len(t, a.manager.Projects(), 2)
}

type fakePinger struct{ err error }

func (f *fakePinger) Ping(context.Context) error { return f.err }

func TestStartOnlineStatusWatcher(t *testing.T) {
	a, _ := newTestApp(t, "u1", projects.NewSampleRepository(0))
	p := &fakePinger{err: errors.New("down")}
	a.pinger = p
	a.cached = projects.NewCachedRepository(projects.NewSampleRepository(0), nil, logging.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return a.cached.Mode() == projects.ModeOffline }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "(u1 offline)", a.status())
	cancel()
	<-done
}
