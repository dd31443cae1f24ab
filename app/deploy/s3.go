// Package deploy publishes a built site to an S3 bucket.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"mime"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"folio/app/progress"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader is the subset of manager.Uploader the publisher needs.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Publisher uploads every file of a build directory to a bucket.
type S3Publisher struct {
	Bucket       string
	Prefix       string
	CacheControl string
	Uploader     Uploader
	Reporter     progress.Reporter
}

// NewS3Publisher loads the default AWS credential chain and returns a
// publisher for bucket. An empty region defers to the environment.
func NewS3Publisher(ctx context.Context, bucket, prefix, region string) (*S3Publisher, error) {
	if bucket == "" {
		return nil, errors.New("bucket is required")
	}

	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	return &S3Publisher{
		Bucket:   bucket,
		Prefix:   prefix,
		Uploader: manager.NewUploader(s3.NewFromConfig(cfg)),
		Reporter: progress.Discard{},
	}, nil
}

// Publish uploads dir and returns the number of files sent. It stops at
// the first failed upload.
func (p *S3Publisher) Publish(ctx context.Context, dir string) (int, error) {
	files, err := collectFiles(dir)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, fmt.Errorf("nothing to publish in %s", dir)
	}

	reporter := p.Reporter
	if reporter == nil {
		reporter = progress.Discard{}
	}
	reporter.Start(len(files))
	defer reporter.Finish()

	for i, rel := range files {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		key := ObjectKey(p.Prefix, rel)
		if err := p.upload(ctx, filepath.Join(dir, rel), key); err != nil {
			return i, err
		}
		reporter.Update(i+1, key)
	}

	log.Printf("Published %d files to s3://%s/%s", len(files), p.Bucket, strings.Trim(p.Prefix, "/"))
	return len(files), nil
}

func (p *S3Publisher) upload(ctx context.Context, path, key string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	input := &s3.PutObjectInput{
		Bucket:      aws.String(p.Bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(ContentType(path)),
	}
	if p.CacheControl != "" {
		input.CacheControl = aws.String(p.CacheControl)
	}

	if _, err := p.Uploader.Upload(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s to S3: %w", key, err)
	}
	return nil
}

// ContentType guesses the MIME type from the file extension.
func ContentType(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// ObjectKey joins the key prefix and a slash-separated relative path.
func ObjectKey(prefix, rel string) string {
	rel = filepath.ToSlash(rel)
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return rel
	}
	return path.Join(prefix, rel)
}

func collectFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}
