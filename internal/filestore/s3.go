// Package filestore persists the documents attached to translation
// requests. Request rows only carry file names; the bytes live here.
package filestore

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/pkg/errors"

	"github.com/doctrans/dtrs/model"
)

const (
	defaultAWSRegion        = "us-east-1"
	defaultAWSClientRetries = 3
)

// S3FileStore stores documents in a single S3 bucket, keyed by request ID,
// document kind and stored file name.
type S3FileStore struct {
	client *s3.Client
	bucket string
}

// NewS3FileStore builds an S3FileStore around the ambient AWS configuration.
func NewS3FileStore(bucket string) (*S3FileStore, error) {
	cfg, err := config.LoadDefaultConfig(
		context.TODO(),
		config.WithDefaultRegion(defaultAWSRegion),
		config.WithRetryMaxAttempts(defaultAWSClientRetries),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS configuration")
	}

	return &S3FileStore{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
	}, nil
}

// GetBucketName returns the bucket backing this store.
func (f *S3FileStore) GetBucketName() string {
	return f.bucket
}

// DocumentKey builds the object key for one document of a request.
func DocumentKey(requestID string, kind model.UploadKind, storedFileName string) string {
	return fmt.Sprintf("requests/%s/%s/%s", requestID, kind, storedFileName)
}

// FileExists reports whether an object is present under the given key.
func (f *S3FileStore) FileExists(key string) (bool, error) {
	_, err := f.client.HeadObject(context.TODO(), &s3.HeadObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NotFound" || apiErr.ErrorCode() == "NoSuchKey") {
			return false, nil
		}
		return false, errors.Wrapf(err, "failed to check for object %s", key)
	}

	return true, nil
}

// UploadFile copies a local file into the bucket under the given key.
func (f *S3FileStore) UploadFile(localPath, key string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return errors.Wrap(err, "failed to open file before upload")
	}
	defer file.Close()

	uploader := manager.NewUploader(f.client)
	_, err = uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	return errors.Wrapf(err, "failed to upload object %s", key)
}

// DownloadFile fetches an object into a temporary file and returns its path
// alongside a cleanup function the caller must invoke when done.
func (f *S3FileStore) DownloadFile(key string) (string, func(), error) {
	tempFile, err := os.CreateTemp("", "dtrs-document-")
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to create temporary file to write to")
	}
	cleanup := func() {
		_ = tempFile.Close()
		_ = os.Remove(tempFile.Name())
	}

	downloader := manager.NewDownloader(f.client)
	_, err = downloader.Download(context.TODO(), tempFile, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		cleanup()
		return "", nil, errors.Wrapf(err, "failed to download object %s", key)
	}

	return tempFile.Name(), cleanup, nil
}
