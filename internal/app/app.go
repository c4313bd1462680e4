// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/haierkeys/fast-ledger-sync-service/internal/dao"
	"github.com/haierkeys/fast-ledger-sync-service/internal/domain"
	"github.com/haierkeys/fast-ledger-sync-service/internal/ledger"
	"github.com/haierkeys/fast-ledger-sync-service/internal/metrics"
	"github.com/haierkeys/fast-ledger-sync-service/internal/service"
	"github.com/haierkeys/fast-ledger-sync-service/pkg/writequeue"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	writeQueueMgr *writequeue.Manager
	Metrics       *metrics.SyncMetrics

	// Repository 层
	FleetRepo    domain.EntityRepository[domain.Vehicle]
	FuelRepo     domain.EntityRepository[domain.FuelEntry]
	FinanceRepo  domain.EntityRepository[domain.FinanceEntry]
	CalendarRepo domain.EntityRepository[domain.CalendarEvent]
	ShiftRepo    domain.EntityRepository[domain.ShiftJourney]
	HistoryRepo  domain.HistoryRepository

	// 远端账本
	Remote *ledger.Set

	// Service 层
	Orchestrator  *service.SyncOrchestrator
	HistoryLog    *service.HistoryLog
	BackupService service.BackupService

	shutdownOnce sync.Once
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(ctx context.Context, cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:  cfg,
		logger:  logger,
		DB:      db,
		Metrics: metrics.New(),
	}

	// 初始化 Write Queue Manager
	wqConfig := cfg.GetWriteQueueConfig()
	a.writeQueueMgr = writequeue.New(&wqConfig, logger)

	dbConfig := cfg.GetDatabaseConfig()
	a.Dao = dao.New(db,
		dao.WithConfig(&dbConfig),
		dao.WithLogger(logger),
		dao.WithWriteQueueManager(a.writeQueueMgr),
	)
	if dbConfig.AutoMigrate {
		if err := a.Dao.Migrate(); err != nil {
			return nil, err
		}
	}

	// 初始化 Repository 层
	a.FleetRepo = dao.NewFleetRepository(a.Dao)
	a.FuelRepo = dao.NewFuelRepository(a.Dao)
	a.FinanceRepo = dao.NewFinanceRepository(a.Dao)
	a.CalendarRepo = dao.NewCalendarRepository(a.Dao)
	a.ShiftRepo = dao.NewShiftRepository(a.Dao)
	a.HistoryRepo = dao.NewHistoryRepository(a.Dao)

	remote, err := ledger.NewSet(ctx, cfg.Remote, logger)
	if err != nil {
		return nil, err
	}
	a.Remote = remote

	checker, err := service.NewRecordValidator()
	if err != nil {
		return nil, errors.Wrap(err, "init record validator failed")
	}

	// 模块顺序即 domain.Order()
	modules := []service.SyncModule{
		service.NewDomainSync(domain.Fleet, a.FleetRepo, remote.Fleet, checker, logger),
		service.NewDomainSync(domain.Fuel, a.FuelRepo, remote.Fuel, checker, logger),
		service.NewDomainSync(domain.Finance, a.FinanceRepo, remote.Finance, checker, logger),
		service.NewDomainSync(domain.Calendar, a.CalendarRepo, remote.Calendar, checker, logger),
		service.NewDomainSync(domain.Shift, a.ShiftRepo, remote.Shift, checker, logger),
	}

	a.Orchestrator = service.NewSyncOrchestrator(modules, cfg.GetServiceConfig(), logger)
	a.HistoryLog = service.NewHistoryLog(a.HistoryRepo)
	a.BackupService = service.NewBackupService(a.Orchestrator, a.HistoryLog, a.Metrics, logger)

	logger.Info("App container initialized successfully",
		zap.String("database", dbConfig.Type),
		zap.String("remote", cfg.Remote.Type),
		zap.String("validationPolicy", cfg.Sync.ValidationPolicy),
		zap.Int("writeQueueCapacity", wqConfig.QueueCapacity))

	return a, nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Close 释放应用容器持有的数据库连接
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	a.logger.Info("Database connection closed")
	return nil
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// 按顺序关闭：Write Queue Manager -> Database
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error

	a.shutdownOnce.Do(func() {
		a.logger.Info("App container shutting down...")

		if ctx == nil {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
			defer cancel()
		}

		// 1. 排空所有写队列
		if a.writeQueueMgr != nil {
			if err := a.writeQueueMgr.Shutdown(ctx); err != nil {
				a.logger.Warn("write queue manager shutdown error", zap.Error(err))
				errs = append(errs, fmt.Errorf("write queue manager shutdown: %w", err))
			}
		}

		// 2. 关闭数据库连接
		if err := a.Close(); err != nil {
			errs = append(errs, err)
		}
	})

	if len(errs) > 0 {
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}
	return nil
}
