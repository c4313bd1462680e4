// Package storage object storage backends used by the remote ledger
// Package storage 远端账本使用的对象存储后端
package storage

import (
	"context"
	"strings"

	"github.com/haierkeys/fast-ledger-sync-service/pkg/storage/aliyun_oss"
	"github.com/haierkeys/fast-ledger-sync-service/pkg/storage/aws_s3"
	"github.com/haierkeys/fast-ledger-sync-service/pkg/storage/local_fs"
	"github.com/haierkeys/fast-ledger-sync-service/pkg/storage/webdav"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Type = string

const (
	LOCAL  Type = "localfs"
	S3     Type = "s3"
	R2     Type = "r2"
	MinIO  Type = "minio"
	OSS    Type = "oss"
	WebDAV Type = "webdav"
)

// ErrInvalidStorageType 不支持的存储类型
var ErrInvalidStorageType = errors.New("invalid storage type")

// Config Unified storage configuration
// Config 统一存储配置
type Config struct {
	Type Type `yaml:"type" default:"localfs"`

	// CustomPath prefix prepended to every key
	// CustomPath 所有键的前缀
	CustomPath string `yaml:"custom-path" default:"ledger"`

	// Cloud Storage (S3/OSS/MinIO/R2)
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	AccountID       string `yaml:"account-id"` // Cloudflare R2 specific

	// WebDAV
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	// Local FS
	SavePath string `yaml:"save-path" default:"storage/remote"`
}

// Storager key/value object store
// Storager 键值对象存储
type Storager interface {
	// Put writes content under key, replacing any previous object
	Put(ctx context.Context, key string, content []byte) error
	// Get reads the object at key, the error wraps fs.ErrNotExist when absent
	Get(ctx context.Context, key string) ([]byte, error)
	// List returns every key below prefix, relative to the configured custom path
	List(ctx context.Context, prefix string) ([]string, error)
}

var (
	_ Storager = (*local_fs.LocalFS)(nil)
	_ Storager = (*aws_s3.S3)(nil)
	_ Storager = (*aliyun_oss.OSS)(nil)
	_ Storager = (*webdav.WebDAV)(nil)
)

// NewClient 按类型创建存储客户端
func NewClient(ctx context.Context, config *Config, logger *zap.Logger) (Storager, error) {
	if config == nil {
		return nil, ErrInvalidStorageType
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	customPath := strings.Trim(config.CustomPath, "/")

	switch config.Type {
	case LOCAL:
		return local_fs.NewClient(&local_fs.Config{
			SavePath:   config.SavePath,
			CustomPath: customPath,
		})
	case S3, MinIO, R2:
		endpoint := config.Endpoint
		region := config.Region
		if config.Type == R2 {
			if endpoint == "" {
				endpoint = "https://" + config.AccountID + ".r2.cloudflarestorage.com"
			}
			region = "auto"
		}
		return aws_s3.NewClient(ctx, &aws_s3.Config{
			Endpoint:        endpoint,
			Region:          region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      customPath,
			UsePathStyle:    config.Type == MinIO,
		}, aws_s3.WithLogger(logger))
	case OSS:
		return aliyun_oss.NewClient(&aliyun_oss.Config{
			Endpoint:        config.Endpoint,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      customPath,
		})
	case WebDAV:
		return webdav.NewClient(&webdav.Config{
			Endpoint:   config.Endpoint,
			User:       config.User,
			Password:   config.Password,
			CustomPath: customPath,
		})
	}
	return nil, errors.Wrapf(ErrInvalidStorageType, "%q", config.Type)
}
