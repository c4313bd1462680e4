// Package dao gorm backed local store
// Package dao 基于 gorm 的本地存储实现
package dao

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/fast-ledger-sync-service/internal/model"
	"github.com/haierkeys/fast-ledger-sync-service/pkg/util"
	"github.com/haierkeys/fast-ledger-sync-service/pkg/writequeue"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Type            string
	Path            string
	UserName        string
	Password        string
	Host            string
	Port            int
	Name            string
	AutoMigrate     bool
	Charset         string
	ParseTime       bool
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime string
	ConnMaxIdleTime string
	RunMode         string
}

// Dao 数据访问对象
type Dao struct {
	DB         *gorm.DB
	config     *DatabaseConfig
	logger     *zap.Logger
	writeQueue *writequeue.Manager
}

// Option Dao 选项
type Option func(*Dao)

// WithConfig 设置数据库配置
func WithConfig(c *DatabaseConfig) Option {
	return func(d *Dao) { d.config = c }
}

// WithLogger 设置日志器
func WithLogger(l *zap.Logger) Option {
	return func(d *Dao) { d.logger = l }
}

// WithWriteQueueManager serialize writes per table through wq
// WithWriteQueueManager 通过写队列按表串行化写操作
func WithWriteQueueManager(wq *writequeue.Manager) Option {
	return func(d *Dao) { d.writeQueue = wq }
}

// New 创建 Dao
func New(db *gorm.DB, opts ...Option) *Dao {
	d := &Dao{DB: db, config: &DatabaseConfig{}, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	if d.config == nil {
		d.config = &DatabaseConfig{}
	}
	return d
}

// ExecuteWrite runs fn inside the write queue of key when one is configured
// ExecuteWrite 在 key 对应的写队列中执行 fn，未配置写队列时直接执行
func (d *Dao) ExecuteWrite(ctx context.Context, key string, fn func(db *gorm.DB) error) error {
	if d.writeQueue == nil {
		return fn(d.DB.WithContext(ctx))
	}
	return d.writeQueue.Execute(ctx, key, func() error {
		return fn(d.DB.WithContext(ctx))
	})
}

// Migrate creates or updates every table
// Migrate 创建或更新全部表结构
func (d *Dao) Migrate() error {
	dbType := d.config.Type
	if dbType == "" {
		dbType = "sqlite"
	}
	if err := model.AutoMigrate(d.DB, ""); err != nil {
		d.logger.Error("database migrate failed", zap.String("type", dbType), zap.Error(err))
		return errors.Wrap(err, "auto migrate failed")
	}
	d.logger.Info("database migrated", zap.String("type", dbType), zap.Int("tables", len(model.Tables())))
	return nil
}

// NewDBEngine opens the configured database
// NewDBEngine 打开配置的数据库
func NewDBEngine(c DatabaseConfig) (*gorm.DB, error) {
	dialector, err := useDialector(c)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open database failed")
	}
	if c.RunMode == "debug" {
		db.Config.Logger = logger.Default.LogMode(logger.Info)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// SQLite 只允许单个写连接
	if c.Type == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else if c.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(parseDurationOr(c.ConnMaxLifetime, 30*time.Minute))
	sqlDB.SetConnMaxIdleTime(parseDurationOr(c.ConnMaxIdleTime, 10*time.Minute))

	return db, nil
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	if d, err := util.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

func useDialector(c DatabaseConfig) (gorm.Dialector, error) {
	switch c.Type {
	case "mysql":
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			c.Charset,
			c.ParseTime,
		)), nil
	case "postgres":
		sslMode := c.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return postgres.Open(fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host,
			c.Port,
			c.UserName,
			c.Password,
			c.Name,
			sslMode,
		)), nil
	case "sqlite", "":
		if dir := filepath.Dir(c.Path); dir != "" {
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return nil, errors.Wrap(err, "create database directory failed")
			}
		}
		return sqlite.Open(c.Path), nil
	}
	return nil, errors.Errorf("unsupported database type: %s", c.Type)
}
