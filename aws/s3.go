package aws

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/viper"
)

// UploadImage stores an image under key and returns the public URI the
// catalog persists in poster_uri fields.
func (c *S3Client) UploadImage(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	uploader := manager.NewUploader(c.C)

	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      c.Bucket,
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image, %w", err)
	}

	return fmt.Sprintf("%v/%v", viper.GetString("aws.public_url"), key), nil
}

func (c *S3Client) DeleteImage(ctx context.Context, key string) error {
	_, err := c.C.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: c.Bucket,
		Key:    aws.String(key),
	})

	return err
}
