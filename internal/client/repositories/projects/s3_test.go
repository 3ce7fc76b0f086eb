package projects

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ownerJSON = `[
  {"id":"p1","title":"Site","description":"My site","technologies":["React","Go"],
   "images":[],"completedAt":"2024-05-01T10:00:00Z","featured":true},
  {"id":"p2","ownerId":"someone-else","title":"Other","description":"x",
   "technologies":["C"],"images":[],"completedAt":"2024-05-01T10:00:00Z"},
  {"id":"p3","ownerId":"u1","title":"CLI","description":"A tool",
   "technologies":["Go"],"completedAt":"2023-01-02T03:04:05Z"}
]`

func fakeS3(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/portfolios/owners/u1/projects.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, ownerJSON)
		case "/portfolios/owners/broken/projects.json":
			_, _ = io.WriteString(w, "{not json")
		case "/portfolios/owners/denied/projects.json":
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusForbidden)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`)
		default:
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &paths
}

func newFakeS3Repo(t *testing.T) (*S3Repository, *[]string) {
	t.Helper()
	srv, paths := fakeS3(t)
	client, err := NewS3Client(context.Background(), S3Config{
		Region:       "us-east-1",
		BaseEndpoint: srv.URL,
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
	})
	require.NoError(t, err)
	return NewS3Repository(client, "portfolios", ""), paths
}

func TestS3Repository_FetchesOwnerObject(t *testing.T) {
	repo, paths := newFakeS3Repo(t)

	got, err := repo.FetchProjects(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "u1", got[0].OwnerID)
	assert.True(t, got[0].Featured)
	assert.Equal(t, "p3", got[1].ID)
	assert.Equal(t, []string{}, got[1].Images)
	assert.Equal(t, []string{"/portfolios/owners/u1/projects.json"}, *paths)
}

func TestS3Repository_MissingObjectIsEmpty(t *testing.T) {
	repo, _ := newFakeS3Repo(t)

	got, err := repo.FetchProjects(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestS3Repository_Errors(t *testing.T) {
	repo, _ := newFakeS3Repo(t)

	_, err := repo.FetchProjects(context.Background(), "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode s3://portfolios/owners/broken/projects.json")

	_, err = repo.FetchProjects(context.Background(), "denied")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get s3://portfolios/owners/denied/projects.json")
}

func TestS3Repository_ObjectKeyWithPrefix(t *testing.T) {
	repo := NewS3Repository(nil, "b", "site/v1")
	assert.Equal(t, "site/v1/owners/u1/projects.json", repo.ObjectKey("u1"))
}

type stubGetter struct {
	body string
	err  error
	in   *s3.GetObjectInput
}

func (s *stubGetter) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	s.in = in
	if s.err != nil {
		return nil, s.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(s.body))}, nil
}

func TestS3Repository_WithStubClient(t *testing.T) {
	stub := &stubGetter{body: `[]`}
	repo := NewS3Repository(stub, "bucket", "")

	got, err := repo.FetchProjects(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, "bucket", aws.ToString(stub.in.Bucket))
	assert.Equal(t, "owners/u1/projects.json", aws.ToString(stub.in.Key))

	stub.err = errors.New("network down")
	_, err = repo.FetchProjects(context.Background(), "u1")
	require.ErrorContains(t, err, "network down")
}

func TestNewS3Client_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "eu-west-1", lo.Region)
		assert.Nil(t, lo.Credentials)
		return aws.Config{}, errors.New("no config")
	}

	_, err := NewS3Client(context.Background(), S3Config{Region: "eu-west-1"})
	require.ErrorContains(t, err, "load aws config")
}

func TestNewS3Client_AppliesEndpoint(t *testing.T) {
	origNew := newS3ClientFromConfig
	t.Cleanup(func() { newS3ClientFromConfig = origNew })

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}

	_, err := NewS3Client(context.Background(), S3Config{Region: "us-east-1", BaseEndpoint: "http://127.0.0.1:9000", AccessKey: "k", SecretKey: "s"})
	require.NoError(t, err)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
}
