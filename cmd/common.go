package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	internalApp "github.com/haierkeys/fast-ledger-sync-service/internal/app"
	"github.com/haierkeys/fast-ledger-sync-service/internal/dao"
	"github.com/haierkeys/fast-ledger-sync-service/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// configCandidates 未指定 -c 时按顺序查找
var configCandidates = []string{
	"config/config-dev.yaml",
	"config.yaml",
	"config/config.yaml",
}

// resolveConfig changes into -d and returns the config path, writing the embedded default on first run
// resolveConfig 切换工作目录并确定配置文件路径，首次运行时写入默认配置
func resolveConfig(f *globalFlags) (string, error) {
	if len(f.dir) > 0 {
		if err := os.Chdir(f.dir); err != nil {
			return "", errors.Wrap(err, "failed to change the current working directory")
		}
		bootstrapLogger.Debug("working directory changed", zap.String("dir", f.dir))
	}

	if len(f.config) > 0 {
		return f.config, nil
	}

	for _, p := range configCandidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	p := configCandidates[len(configCandidates)-1]
	bootstrapLogger.Warn("config file not found, creating default config", zap.String("path", p))
	if err := os.MkdirAll(filepath.Dir(p), 0754); err != nil {
		return "", errors.Wrap(err, "config file auto create error")
	}
	if err := os.WriteFile(p, []byte(configDefault), 0644); err != nil {
		return "", errors.Wrap(err, "config file auto create writing error")
	}
	return p, nil
}

// openApp loads the config and builds the logger, database and app container
// openApp 加载配置并初始化日志器、数据库与应用容器
func openApp(ctx context.Context, configPath string) (*internalApp.App, error) {
	cfg, _, err := internalApp.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := initStorageWithConfig(cfg); err != nil {
		return nil, fmt.Errorf("initStorage: %w", err)
	}

	lg, err := logger.NewLogger(cfg.GetLoggerConfig())
	if err != nil {
		return nil, fmt.Errorf("initLogger: %w", err)
	}

	db, err := dao.NewDBEngine(cfg.GetDatabaseConfig())
	if err != nil {
		return nil, fmt.Errorf("initDatabase: %w", err)
	}

	a, err := internalApp.NewApp(ctx, cfg, lg, db)
	if err != nil {
		if sqlDB, derr := db.DB(); derr == nil {
			_ = sqlDB.Close()
		}
		return nil, fmt.Errorf("failed to create app container: %w", err)
	}
	return a, nil
}

// initStorageWithConfig 初始化日志与数据库目录
func initStorageWithConfig(cfg *internalApp.AppConfig) error {
	dirs := []string{
		filepath.Dir(cfg.Log.File),
	}
	if cfg.Database.Type == "sqlite" {
		dirs = append(dirs, filepath.Dir(cfg.Database.Path))
	}

	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0754); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// withApp runs fn against a fully built container and shuts it down afterwards
func withApp(ctx context.Context, fn func(a *internalApp.App) error) error {
	configPath, err := resolveConfig(flags)
	if err != nil {
		return err
	}
	a, err := openApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = a.Shutdown(context.Background())
		_ = a.Logger().Sync()
	}()
	return fn(a)
}

// printJSON 输出缩进 JSON 到 stdout
func printJSON(v any) error {
	out, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode output")
	}
	_, err = fmt.Fprintln(os.Stdout, string(out))
	return err
}
