package sink

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/antithesishq/promptgen/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 writes batches as objects in an S3-compatible bucket.
type S3 struct {
	timeout time.Duration
	bucket  string
	prefix  string
	client  *s3.Client
	now     func() time.Time
}

// NewS3 constructs an S3 sink. It doesn't contact the server.
func NewS3(cfg config.S3Config) *S3 {
	client := s3.New(s3.Options{
		Region:                     cfg.Region,
		BaseEndpoint:               aws.String(cfg.Endpoint),
		DefaultsMode:               aws.DefaultsModeStandard,
		Credentials:                credentials.NewStaticCredentialsProvider(cfg.User, cfg.Password, "" /* session */),
		UsePathStyle:               true,
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenSupported,
		ResponseChecksumValidation: aws.ResponseChecksumValidationWhenSupported,
		HTTPClient: &http.Client{
			Transport: &http.Transport{},
		},
	})
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &S3{
		timeout: timeout,
		bucket:  cfg.Bucket,
		prefix:  cfg.Prefix,
		client:  client,
		now:     time.Now,
	}
}

// EnsureBucketExists creates the bucket unless we already own it.
func (s *S3) EnsureBucketExists(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if hasSmithyCode(err, "BucketAlreadyOwnedByYou") {
		return nil
	}
	return err
}

// Save implements Sink. The returned location is an s3:// URL.
func (s *S3) Save(ctx context.Context, prompts []string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	key := path.Join(s.prefix, Name(s.now()))
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(Encode(prompts)),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

// get reads back a saved batch.
func (s *S3) get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if hasSmithyCode(err, "NoSuchKey") {
			return nil, fmt.Errorf("get object %q: %w", key, errNotFound)
		}
		return nil, fmt.Errorf("get object: %w", err)
	}
	defer res.Body.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(res.Body); err != nil {
		return nil, fmt.Errorf("read object: %w", err)
	}
	return buf.Bytes(), nil
}
