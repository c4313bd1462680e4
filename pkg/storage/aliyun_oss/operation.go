package aliyun_oss

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"net/http"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"
)

func (p *OSS) GetBucket(bucketName string) error {
	if len(bucketName) <= 0 {
		bucketName = p.Config.BucketName
	}
	var err error
	p.Bucket, err = p.Client.Bucket(bucketName)
	return err
}

func (p *OSS) bucket() (*oss.Bucket, error) {
	if p.Bucket == nil {
		if err := p.GetBucket(""); err != nil {
			return nil, errors.Wrap(err, "aliyun_oss")
		}
	}
	return p.Bucket, nil
}

func (p *OSS) objectKey(key string) string {
	if p.Config.CustomPath == "" {
		return key
	}
	return p.Config.CustomPath + "/" + key
}

func (p *OSS) Put(ctx context.Context, key string, content []byte) error {
	b, err := p.bucket()
	if err != nil {
		return err
	}
	if err := b.PutObject(p.objectKey(key), bytes.NewReader(content), oss.WithContext(ctx)); err != nil {
		return errors.Wrap(err, "aliyun_oss")
	}
	return nil
}

func (p *OSS) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := p.bucket()
	if err != nil {
		return nil, err
	}
	body, err := b.GetObject(p.objectKey(key), oss.WithContext(ctx))
	if err != nil {
		var svcErr oss.ServiceError
		if errors.As(err, &svcErr) && svcErr.StatusCode == http.StatusNotFound {
			return nil, errors.Wrapf(fs.ErrNotExist, "aliyun_oss: %s", key)
		}
		return nil, errors.Wrap(err, "aliyun_oss")
	}
	defer body.Close()

	content, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrap(err, "aliyun_oss")
	}
	return content, nil
}

func (p *OSS) List(ctx context.Context, prefix string) ([]string, error) {
	b, err := p.bucket()
	if err != nil {
		return nil, err
	}

	trim := ""
	if p.Config.CustomPath != "" {
		trim = p.Config.CustomPath + "/"
	}

	var keys []string
	token := ""
	for {
		opts := []oss.Option{oss.Prefix(p.objectKey(prefix)), oss.WithContext(ctx)}
		if token != "" {
			opts = append(opts, oss.ContinuationToken(token))
		}
		res, err := b.ListObjectsV2(opts...)
		if err != nil {
			return nil, errors.Wrap(err, "aliyun_oss")
		}
		for _, obj := range res.Objects {
			keys = append(keys, strings.TrimPrefix(obj.Key, trim))
		}
		if !res.IsTruncated {
			break
		}
		token = res.NextContinuationToken
	}
	return keys, nil
}
