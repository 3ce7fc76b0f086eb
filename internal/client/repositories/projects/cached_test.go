package projects

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/gophfolio/internal/client/models"
	"github.com/dmitrijs2005/gophfolio/internal/common"
	"github.com/dmitrijs2005/gophfolio/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSnapshots struct {
	saved   map[string][]models.Project
	saveErr error
	readErr error
}

func newFakeSnapshots() *fakeSnapshots {
	return &fakeSnapshots{saved: map[string][]models.Project{}}
}

func (f *fakeSnapshots) FetchProjects(ctx context.Context, ownerID string) ([]models.Project, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	p, ok := f.saved[ownerID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakeSnapshots) SaveProjects(ctx context.Context, ownerID string, projects []models.Project) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved[ownerID] = projects
	return nil
}

var errRemote = errors.New("backend down")

func failing() Repository {
	return RepositoryFunc(func(context.Context, string) ([]models.Project, error) {
		return nil, errRemote
	})
}

func TestCachedRepository_OnlineSavesSnapshot(t *testing.T) {
	snaps := newFakeSnapshots()
	repo := NewCachedRepository(NewSampleRepository(0), snaps, logging.Discard())
	assert.Equal(t, ModeUnknown, repo.Mode())

	got, err := repo.FetchProjects(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, got, snaps.saved["u1"])
	assert.Equal(t, ModeOnline, repo.Mode())
}

func TestCachedRepository_SaveFailureDoesNotFailFetch(t *testing.T) {
	snaps := newFakeSnapshots()
	snaps.saveErr = errors.New("disk full")
	repo := NewCachedRepository(NewSampleRepository(0), snaps, nil)

	got, err := repo.FetchProjects(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestCachedRepository_OfflineServesSnapshot(t *testing.T) {
	snaps := newFakeSnapshots()
	snaps.saved["u1"] = SampleProjects("u1")[:1]
	repo := NewCachedRepository(failing(), snaps, logging.Discard())

	got, err := repo.FetchProjects(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, snaps.saved["u1"], got)
	assert.Equal(t, ModeOffline, repo.Mode())
}

func TestCachedRepository_OfflineWithoutSnapshotReturnsRemoteError(t *testing.T) {
	repo := NewCachedRepository(failing(), newFakeSnapshots(), logging.Discard())

	_, err := repo.FetchProjects(context.Background(), "u1")
	require.ErrorIs(t, err, errRemote)
}

func TestCachedRepository_BrokenSnapshotReturnsRemoteError(t *testing.T) {
	snaps := newFakeSnapshots()
	snaps.readErr = errors.New("corrupt")
	repo := NewCachedRepository(failing(), snaps, logging.Discard())

	_, err := repo.FetchProjects(context.Background(), "u1")
	require.ErrorIs(t, err, errRemote)
}

func TestCachedRepository_CanceledFetchKeepsMode(t *testing.T) {
	snaps := newFakeSnapshots()
	snaps.saved["u1"] = SampleProjects("u1")
	repo := NewCachedRepository(NewSampleRepository(0), snaps, logging.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FetchProjects(ctx, "u1")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, ModeUnknown, repo.Mode())
}

func TestCachedRepository_WithSQLiteSnapshots(t *testing.T) {
	snaps := newSnapshotRepo(t)
	online := NewCachedRepository(NewSampleRepository(0), snaps, logging.Discard())

	want, err := online.FetchProjects(context.Background(), "u1")
	require.NoError(t, err)

	offline := NewCachedRepository(failing(), snaps, logging.Discard())
	got, err := offline.FetchProjects(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = offline.FetchProjects(context.Background(), "u2")
	require.ErrorIs(t, err, errRemote)
}
