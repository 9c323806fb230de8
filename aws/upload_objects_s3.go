package s3

import (
	"fmt"
	"mime/multipart"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	awss3 "github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// Uploader stores user avatars in S3.
type Uploader struct {
	sess   *session.Session
	bucket string
}

// NewUploader builds an uploader from S3_BUCKET and AWS_REGION. Credentials
// come from the default AWS chain (env, shared config, instance role).
func NewUploader() (*Uploader, error) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is not set")
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(os.Getenv("AWS_REGION")),
	})
	if err != nil {
		return nil, err
	}
	return &Uploader{sess: sess, bucket: bucket}, nil
}

// UploadObject uploads the file under the given key and returns its public URL.
func (u *Uploader) UploadObject(fileName string, contentType string, file multipart.File) (string, error) {
	uploader := s3manager.NewUploader(u.sess)
	_, err := uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(fileName),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", u.bucket, fileName), nil
}

// DeleteObject removes a previously uploaded object.
func (u *Uploader) DeleteObject(fileName string) error {
	_, err := awss3.New(u.sess).DeleteObject(&awss3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(fileName),
	})
	return err
}
