package checkpoint

import (
	"bytes"
	"io/ioutil"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Store persists slabs as objects under Prefix in Bucket, grounded on
// cloud/bucket.go's s3Bucket helper but talking to the native aws-sdk-go S3
// client directly rather than through a blob abstraction, since the rest
// of this module has no other use for one.
type S3Store struct {
	Bucket string
	Prefix string
	client *s3.S3
}

// NewS3Store opens a session using AWS_REGION/AWS_ACCESS_KEY_ID/
// AWS_SECRET_ACCESS_KEY from the environment, matching cloud/bucket.go's
// s3Bucket credential handling.
func NewS3Store(bucket, prefix string) (*S3Store, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-2"
	}
	cfg := &aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewEnvCredentials(),
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}
	return &S3Store{Bucket: bucket, Prefix: prefix, client: s3.New(sess)}, nil
}

func (s *S3Store) key(name string, step int) string {
	if s.Prefix == "" {
		return slabFileName(name, step)
	}
	return s.Prefix + "/" + slabFileName(name, step)
}

func (s *S3Store) WriteSlab(name string, step int, data []byte) error {
	return retryIOFailed("checkpoint.S3Store.WriteSlab", func() error {
		_, err := s.client.PutObject(&s3.PutObjectInput{
			Bucket: aws.String(s.Bucket),
			Key:    aws.String(s.key(name, step)),
			Body:   bytes.NewReader(data),
		})
		return err
	}, nil)
}

func (s *S3Store) ReadSlab(name string, step int) ([]byte, error) {
	var data []byte
	err := retryIOFailed("checkpoint.S3Store.ReadSlab", func() error {
		out, err := s.client.GetObject(&s3.GetObjectInput{
			Bucket: aws.String(s.Bucket),
			Key:    aws.String(s.key(name, step)),
		})
		if err != nil {
			return err
		}
		defer out.Body.Close()
		b, err := ioutil.ReadAll(out.Body)
		if err != nil {
			return err
		}
		data = b
		return nil
	}, nil)
	return data, err
}
