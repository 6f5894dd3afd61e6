package storage

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"minitrack/apperr"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const (
	// Transient S3 failures are retried by the SDK with exponential backoff,
	// bounded at this many attempts, before surfacing as storage_unavailable.
	s3MaxRetries     = 3
	s3RequestTimeout = 30 * time.Second
)

// S3Store keeps blobs as objects in a single bucket. Storage keys are
// bucket-relative object names.
type S3Store struct {
	svc      *s3.S3
	uploader *s3manager.Uploader
	bucket   string
}

func NewS3Store(cfg Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, apperr.New(apperr.KindValidation, "S3 bucket must be configured")
	}
	awsConfig := aws.NewConfig().
		WithRegion(cfg.Region).
		WithMaxRetries(s3MaxRetries).
		WithHTTPClient(&http.Client{Timeout: s3RequestTimeout})
	if cfg.Endpoint != "" {
		awsConfig = awsConfig.WithEndpoint(cfg.Endpoint).WithS3ForcePathStyle(true)
	}
	if cfg.Key != "" {
		awsConfig = awsConfig.WithCredentials(credentials.NewStaticCredentials(cfg.Key, cfg.Secret, ""))
	}
	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorageUnavailable, "Cannot initialize S3 storage", err)
	}
	svc := s3.New(sess)
	return &S3Store{
		svc:      svc,
		uploader: s3manager.NewUploaderWithClient(svc),
		bucket:   cfg.Bucket,
	}, nil
}

func (s *S3Store) Put(hint string, data []byte, mimeType string) (string, error) {
	key := hint
	if key == "" {
		key = newKey(mimeType)
	}
	if err := validateKey(key); err != nil {
		return "", err
	}
	// PutObject overwrites existing keys, so retries are idempotent
	_, err := s.uploader.Upload(&s3manager.UploadInput{
		Bucket:      &s.bucket,
		Key:         aws.String(key),
		ContentType: &mimeType,
		Body:        bytes.NewReader(data),
	})
	if err != nil {
		return "", s.wrapError("Cannot store photo file", err)
	}
	return key, nil
}

func (s *S3Store) Get(key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	resp, err := s.svc.GetObject(&s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    aws.String(key),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, apperr.Newf(apperr.KindNotFound, "Photo file %q not found", key)
		}
		return nil, s.wrapError("Cannot read photo file", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, s.wrapError("Cannot read photo file", err)
	}
	return data, nil
}

func (s *S3Store) Delete(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	_, err := s.svc.DeleteObject(&s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    aws.String(key),
	})
	// S3 reports success for missing keys, matching the idempotent contract
	if err != nil && !isNoSuchKey(err) {
		return s.wrapError("Cannot delete photo file", err)
	}
	return nil
}

func (s *S3Store) Exists(key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	_, err := s.svc.HeadObject(&s3.HeadObjectInput{
		Bucket: &s.bucket,
		Key:    aws.String(key),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return false, nil
		}
		return false, s.wrapError("Cannot check photo file", err)
	}
	return true, nil
}

func (s *S3Store) List(prefix string) ([]string, error) {
	keys := []string{}
	input := &s3.ListObjectsV2Input{
		Bucket: &s.bucket,
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}
	err := s.svc.ListObjectsV2Pages(input, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, object := range page.Contents {
			keys = append(keys, aws.StringValue(object.Key))
		}
		return true
	})
	if err != nil {
		return nil, s.wrapError("Cannot list photo files", err)
	}
	return keys, nil
}

func (s *S3Store) wrapError(message string, err error) error {
	return apperr.Wrap(apperr.KindStorageUnavailable, message, err)
}

func isNoSuchKey(err error) bool {
	var ae awserr.Error
	if errors.As(err, &ae) {
		switch ae.Code() {
		case s3.ErrCodeNoSuchKey, "NotFound":
			return true
		}
	}
	return false
}
