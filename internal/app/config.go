// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"

	"github.com/haierkeys/fast-ledger-sync-service/internal/dao"
	"github.com/haierkeys/fast-ledger-sync-service/internal/ledger"
	"github.com/haierkeys/fast-ledger-sync-service/internal/service"
	"github.com/haierkeys/fast-ledger-sync-service/pkg/logger"
	"github.com/haierkeys/fast-ledger-sync-service/pkg/util"
	"github.com/haierkeys/fast-ledger-sync-service/pkg/writequeue"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File       string           `yaml:"-"` // 配置文件路径，不序列化
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Database   DatabaseConfig   `yaml:"database"`
	Remote     ledger.Config    `yaml:"remote"`
	Sync       SyncConfig       `yaml:"sync"`
	Schedule   ScheduleConfig   `yaml:"schedule"`
	WriteQueue WriteQueueConfig `yaml:"write-queue"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"info"`
	// File 日志文件路径，为空时只输出到 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式 debug / release
	RunMode string `yaml:"run-mode" default:"release"`
	// PrivateHttpListen 运维接口监听地址（/metrics /health），为空时不启动
	PrivateHttpListen string `yaml:"private-http-listen" default:"127.0.0.1:9001"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型 sqlite / mysql / postgres
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/ledger.sqlite3"`
	// UserName 用户名
	UserName string `yaml:"username"`
	// Password 密码
	Password string `yaml:"password"`
	// Host 主机
	Host string `yaml:"host"`
	// Port 端口，postgres 使用
	Port int `yaml:"port"`
	// Name 数据库名
	Name string `yaml:"name"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset 字符集
	Charset string `yaml:"charset" default:"utf8mb4"`
	// ParseTime 是否解析时间
	ParseTime bool `yaml:"parse-time" default:"true"`
	// SSLMode postgres sslmode
	SSLMode string `yaml:"ssl-mode" default:"disable"`
	// MaxIdleConns 最大闲置连接数
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期，支持格式：30m（分钟）、1h（小时）
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接最大生命周期
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
}

// SyncConfig 同步配置
type SyncConfig struct {
	// ValidationPolicy advisory 仅提示 / block 校验未通过时拒绝同步
	ValidationPolicy string `yaml:"validation-policy" default:"advisory"`
}

// ScheduleConfig 定时任务配置
type ScheduleConfig struct {
	// BackupCron 定时备份的 cron 表达式，为空时不启用，例如 "0 3 * * *"
	BackupCron string `yaml:"backup-cron"`
}

// WriteQueueConfig 本地存储写队列配置
type WriteQueueConfig struct {
	Capacity int    `yaml:"capacity" default:"100"`
	Timeout  string `yaml:"timeout" default:"30s"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	// 设置默认值
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	if err := yaml.Unmarshal(file, c); err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// 再次设置默认值，以填充 YAML 中存在但值为空的字段
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	if err := c.check(); err != nil {
		return nil, realpath, err
	}

	return c, realpath, nil
}

func (c *AppConfig) check() error {
	switch c.Server.RunMode {
	case "debug", "release", "test":
	default:
		return errors.Errorf("invalid server.run-mode %q, want debug, release or test", c.Server.RunMode)
	}
	switch c.Sync.ValidationPolicy {
	case service.ValidationAdvisory, service.ValidationBlock:
	default:
		return errors.Errorf("invalid sync.validation-policy %q, want advisory or block", c.Sync.ValidationPolicy)
	}
	switch c.Remote.Type {
	case ledger.TypeObject, ledger.TypeDynamoDB:
	default:
		return errors.Errorf("invalid remote.type %q, want object or dynamodb", c.Remote.Type)
	}
	return nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	if err := os.WriteFile(c.File, data, 0644); err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// GetLoggerConfig 获取日志配置
func (c *AppConfig) GetLoggerConfig() logger.Config {
	return logger.Config{
		Level:      c.Log.Level,
		File:       c.Log.File,
		Production: c.Log.Production,
	}
}

// GetDatabaseConfig 获取 DAO 使用的数据库配置
func (c *AppConfig) GetDatabaseConfig() dao.DatabaseConfig {
	return dao.DatabaseConfig{
		Type:            c.Database.Type,
		Path:            c.Database.Path,
		UserName:        c.Database.UserName,
		Password:        c.Database.Password,
		Host:            c.Database.Host,
		Port:            c.Database.Port,
		Name:            c.Database.Name,
		AutoMigrate:     c.Database.AutoMigrate,
		Charset:         c.Database.Charset,
		ParseTime:       c.Database.ParseTime,
		SSLMode:         c.Database.SSLMode,
		MaxIdleConns:    c.Database.MaxIdleConns,
		MaxOpenConns:    c.Database.MaxOpenConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
		ConnMaxIdleTime: c.Database.ConnMaxIdleTime,
		RunMode:         c.Server.RunMode,
	}
}

// GetServiceConfig 提取 Service 层需要的配置
func (c *AppConfig) GetServiceConfig() *service.ServiceConfig {
	return &service.ServiceConfig{
		Sync: service.SyncServiceConfig{
			ValidationPolicy: c.Sync.ValidationPolicy,
		},
	}
}

// GetWriteQueueConfig 获取 Write Queue 配置
func (c *AppConfig) GetWriteQueueConfig() writequeue.Config {
	cfg := writequeue.DefaultConfig()

	if c.WriteQueue.Capacity > 0 {
		cfg.QueueCapacity = c.WriteQueue.Capacity
	}
	if c.WriteQueue.Timeout != "" {
		if timeout, err := util.ParseDuration(c.WriteQueue.Timeout); err == nil {
			cfg.WriteTimeout = timeout
		}
	}

	return cfg
}
