package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	var runCommand = &cobra.Command{
		Use:   "run [-c config_file] [-d working_dir]",
		Short: "Run service: scheduled backups and ops endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfig(flags)
			if err != nil {
				return err
			}

			s, err := NewServer(configPath)
			if err != nil {
				bootstrapLogger.Error("service start err", zap.Error(err))
				return err
			}

			reload := make(chan struct{}, 1)
			w := watchConfig(configPath, s.logger, reload)
			defer w.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			done := s.Done()
			for {
				select {
				case <-ctx.Done():
					bootstrapLogger.Info("Received shutdown signal, initiating graceful shutdown...")
					if s == nil {
						return nil
					}
					if err := s.Close(); err != nil {
						bootstrapLogger.Error("Shutdown completed with error", zap.Error(err))
						return err
					}
					bootstrapLogger.Info("Service has been shut down gracefully.")
					return nil

				case <-reload:
					if s != nil {
						s.logger.Info("config changed, restarting service")
						if err := s.Close(); err != nil {
							bootstrapLogger.Error("service close err", zap.Error(err))
						}
					}
					// 重新初始化 server，失败时等待下一次配置变更
					s, err = NewServer(configPath)
					if err != nil {
						bootstrapLogger.Error("service start err", zap.Error(err))
						s, done = nil, nil
						continue
					}
					done = s.Done()

				case <-done:
					bootstrapLogger.Error("service stopped unexpectedly")
					_ = s.Close()
					return errServiceStopped
				}
			}
		},
	}

	rootCmd.AddCommand(runCommand)
}

var errServiceStopped = errors.New("service stopped unexpectedly")

// watchConfig signals reload on every write to the config file
func watchConfig(configPath string, lg *zap.Logger, reload chan<- struct{}) *watcher.Watcher {
	w := watcher.New()

	// 每个监听周期至多接收 1 个事件
	w.SetMaxEvents(1)
	// 只通知写入事件
	w.FilterOps(watcher.Write)

	go func() {
		for {
			select {
			case event := <-w.Event:
				lg.Info("config watcher change", zap.String("event", event.Op.String()), zap.String("file", event.Path))
				select {
				case reload <- struct{}{}:
				default:
				}
			case err := <-w.Error:
				lg.Error("config watcher error", zap.Error(err))
			case <-w.Closed:
				return
			}
		}
	}()

	if err := w.Add(configPath); err != nil {
		lg.Error("config watcher file error", zap.Error(err))
		return w
	}

	go func() {
		if err := w.Start(time.Second * 5); err != nil {
			lg.Error("config watcher start error", zap.Error(err))
		}
	}()
	return w
}
