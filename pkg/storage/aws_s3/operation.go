package aws_s3

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"strings"

	"github.com/haierkeys/fast-ledger-sync-service/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (p *S3) objectKey(key string) string {
	if p.Config.CustomPath == "" {
		return key
	}
	return p.Config.CustomPath + "/" + key
}

func (p *S3) Put(ctx context.Context, key string, content []byte) error {
	objectKey := p.objectKey(key)
	_, err := p.S3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.Config.BucketName),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(content),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		var noBucket *types.NoSuchBucket
		if errors.As(err, &noBucket) {
			p.logger.Error("bucket does not exist", zap.String(logger.FieldBucket, p.Config.BucketName))
		}
		return errors.Wrap(err, "aws_s3")
	}
	return nil
}

func (p *S3) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := p.S3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.Config.BucketName),
		Key:    aws.String(p.objectKey(key)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, errors.Wrapf(fs.ErrNotExist, "aws_s3: %s", key)
		}
		return nil, errors.Wrap(err, "aws_s3")
	}
	defer out.Body.Close()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.Wrap(err, "aws_s3")
	}
	return content, nil
}

func (p *S3) List(ctx context.Context, prefix string) ([]string, error) {
	fullPrefix := p.objectKey(prefix)
	paginator := s3.NewListObjectsV2Paginator(p.S3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(p.Config.BucketName),
		Prefix: aws.String(fullPrefix),
	})

	trim := ""
	if p.Config.CustomPath != "" {
		trim = p.Config.CustomPath + "/"
	}

	var keys []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "aws_s3")
		}
		for _, obj := range page.Contents {
			keys = append(keys, strings.TrimPrefix(aws.ToString(obj.Key), trim))
		}
	}

	p.logger.Debug("aws_s3 list",
		zap.String(logger.FieldBucket, p.Config.BucketName),
		zap.String(logger.FieldKey, fullPrefix),
		zap.Int("count", len(keys)))
	return keys, nil
}
