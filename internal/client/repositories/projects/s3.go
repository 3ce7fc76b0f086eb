package projects

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrijs2005/gophfolio/internal/client/models"
)

// S3Config locates the bucket holding published portfolios.
type S3Config struct {
	Region       string
	Bucket       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
	Prefix       string
}

// Test seams.
var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// ObjectGetter is the part of *s3.Client the repository uses.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// NewS3Client builds an S3 client from cfg. Static credentials are used when
// an access key is set; otherwise the default AWS credential chain applies.
// A custom endpoint (MinIO and friends) switches to path-style addressing.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// S3Repository reads <prefix>/owners/<ownerID>/projects.json, a JSON array of
// projects. A missing object means the owner has published nothing yet.
type S3Repository struct {
	client ObjectGetter
	bucket string
	prefix string
}

func NewS3Repository(client ObjectGetter, bucket, prefix string) *S3Repository {
	return &S3Repository{client: client, bucket: bucket, prefix: prefix}
}

// ObjectKey returns the key holding ownerID's projects.
func (r *S3Repository) ObjectKey(ownerID string) string {
	return path.Join(r.prefix, "owners", ownerID, "projects.json")
}

func (r *S3Repository) FetchProjects(ctx context.Context, ownerID string) ([]models.Project, error) {
	key := r.ObjectKey(ownerID)

	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return []models.Project{}, nil
		}
		return nil, fmt.Errorf("get s3://%s/%s: %w", r.bucket, key, err)
	}
	defer out.Body.Close()

	var projects []models.Project
	if err := json.NewDecoder(out.Body).Decode(&projects); err != nil {
		return nil, fmt.Errorf("decode s3://%s/%s: %w", r.bucket, key, err)
	}

	result := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.OwnerID == "" {
			p.OwnerID = ownerID
		}
		if p.OwnerID != ownerID {
			continue
		}
		if p.Technologies == nil {
			p.Technologies = []string{}
		}
		if p.Images == nil {
			p.Images = []string{}
		}
		result = append(result, p)
	}
	return result, nil
}

func isNoSuchKey(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
