package build

import (
	"bytes"
	"context"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"github.com/vango-dev/zx/internal/config"
	zxerrors "github.com/vango-dev/zx/internal/errors"
)

// Uploader stores objects. *s3.Client satisfies it.
type Uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Uploader returns an S3 client for the publish region. Credentials are
// read from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN.
func NewS3Uploader(publish config.PublishConfig) *s3.Client {
	return s3.New(s3.Options{
		Region:      publish.Region,
		Credentials: aws.NewCredentialsCache(envCredentials{}),
	})
}

type envCredentials struct{}

func (envCredentials) Retrieve(context.Context) (aws.Credentials, error) {
	creds := aws.Credentials{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "Environment",
	}
	if !creds.HasKeys() {
		return aws.Credentials{}, errors.New("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
	}
	return creds, nil
}

// publish uploads the source map of every successfully compiled file.
// Object keys are the map paths relative to the project root, under the
// configured prefix.
func (b *Builder) publish(ctx context.Context, files []FileResult) (int, error) {
	cfg := b.config.Build.Publish
	count := 0
	for _, f := range files {
		if f.Err != nil || f.SourceMap == "" {
			continue
		}
		data, err := os.ReadFile(f.SourceMap)
		if err != nil {
			return count, zxerrors.New("E142").Wrap(errors.Wrapf(err, "read %s", f.SourceMap))
		}
		rel, err := filepath.Rel(b.config.Dir(), f.SourceMap)
		if err != nil {
			rel = filepath.Base(f.SourceMap)
		}
		key := path.Join(cfg.Prefix, filepath.ToSlash(rel))

		_, err = b.options.Uploader.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(cfg.Bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String("application/json"),
		})
		if err != nil {
			return count, zxerrors.New("E142").
				WithDetail("Uploading " + key + " to " + cfg.Bucket + " failed").
				Wrap(err)
		}
		b.options.Metrics.published()
		b.options.Logger.Debug("published source map", "bucket", cfg.Bucket, "key", key)
		count++
	}
	return count, nil
}
