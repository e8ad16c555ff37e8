package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3manager "github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
)

// S3Backend implements Backend against an S3-compatible object store.
// S3 has no native directories; directory operations walk files on one side
// and mirror relative paths on the other.
type S3Backend struct {
	client     *s3.Client
	uploader   *s3manager.Uploader
	downloader *s3manager.Downloader
	log        zerolog.Logger
}

// S3Options configures S3 client construction. Empty credential fields fall
// back to the SDK's default chain (env, shared config, instance role).
type S3Options struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// NewS3Backend builds an S3-backed storage client.
func NewS3Backend(ctx context.Context, opts S3Options, log zerolog.Logger) (*S3Backend, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	b := &S3Backend{
		client:     client,
		uploader:   s3manager.NewUploader(client),
		downloader: s3manager.NewDownloader(client),
		log:        log,
	}
	log.Info().Str("region", opts.Region).Msg("s3 client initialized")
	return b, nil
}

// CreateBucket creates the named bucket. Idempotent from the caller's point
// of view: an already-owned bucket is not an error.
func (b *S3Backend) CreateBucket(ctx context.Context, bucket string) error {
	_, err := b.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)})
	if err != nil {
		var owned *s3types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			return nil
		}
		return fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	b.log.Info().Str("bucket", bucket).Msg("s3 bucket created")
	return nil
}

func (b *S3Backend) UploadFile(ctx context.Context, bucket, localPath, key string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if key == "" {
		key = filepath.Base(localPath)
	}
	_, err = b.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("upload %s to s3://%s/%s: %w", localPath, bucket, key, err)
	}
	return nil
}

// UploadDirectory uploads every file under localDir, retaining paths
// relative to localDir under prefix.
func (b *S3Backend) UploadDirectory(ctx context.Context, bucket, localDir, prefix string) error {
	err := filepath.WalkDir(localDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(localDir, p)
		if err != nil {
			return err
		}
		key := path.Join(prefix, filepath.ToSlash(rel))
		return b.UploadFile(ctx, bucket, p, key)
	})
	if err != nil {
		return err
	}
	b.log.Info().Str("dir", localDir).Str("bucket", bucket).Str("prefix", prefix).
		Msg("directory uploaded to s3")
	return nil
}

func (b *S3Backend) DownloadFile(ctx context.Context, bucket, key, localPath string) error {
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(localPath)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = b.downloader.Download(ctx, f, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return ErrNotFound
		}
		return fmt.Errorf("download s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

// DownloadDirectory mirrors every object under prefix into localDir,
// retaining relative paths. A prefix with no objects maps to ErrNotFound so
// callers can distinguish "artifact not published" from transport faults.
func (b *S3Backend) DownloadDirectory(ctx context.Context, bucket, prefix, localDir string) error {
	objects, err := b.ListObjects(ctx, bucket, prefix)
	if err != nil {
		return err
	}
	if len(objects) == 0 {
		return ErrNotFound
	}
	for _, obj := range objects {
		rel := strings.TrimPrefix(strings.TrimPrefix(obj.Key, prefix), "/")
		if rel == "" {
			continue
		}
		dest := filepath.Join(localDir, filepath.FromSlash(rel))
		if err := b.DownloadFile(ctx, bucket, obj.Key, dest); err != nil {
			return err
		}
	}
	b.log.Info().Str("bucket", bucket).Str("prefix", prefix).Str("dir", localDir).
		Int("objects", len(objects)).Msg("directory downloaded from s3")
	return nil
}

// ListObjects pages through ListObjectsV2 for the given prefix.
func (b *S3Backend) ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket must be provided")
	}
	input := &s3.ListObjectsV2Input{Bucket: aws.String(bucket)}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}
	var out []ObjectInfo
	paginator := s3.NewListObjectsV2Paginator(b.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list s3://%s/%s: %w", bucket, prefix, err)
		}
		for _, obj := range page.Contents {
			out = append(out, ObjectInfo{
				Key:  aws.ToString(obj.Key),
				Size: aws.ToInt64(obj.Size),
			})
		}
	}
	return out, nil
}
