package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	internalApp "github.com/haierkeys/fast-ledger-sync-service/internal/app"
	"github.com/haierkeys/fast-ledger-sync-service/internal/routers"
	"github.com/haierkeys/fast-ledger-sync-service/internal/task"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Server one generation of the daemon; a config reload closes it and builds the next one
// Server 守护进程实例，配置变更时关闭并重建
type Server struct {
	logger            *zap.Logger
	config            *internalApp.AppConfig
	app               *internalApp.App
	privateHttpServer *http.Server
	tasks             *task.Manager

	cancel context.CancelFunc
	group  *errgroup.Group
}

func NewServer(configPath string) (*Server, error) {
	a, err := openApp(context.Background(), configPath)
	if err != nil {
		return nil, err
	}
	appConfig := a.Config()
	gin.SetMode(appConfig.Server.RunMode)

	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)

	s := &Server{
		logger: a.Logger(),
		config: appConfig,
		app:    a,
		cancel: cancel,
		group:  group,
	}

	// keeps the group open until Close, so Done only fires on a component failure
	group.Go(func() error {
		<-ctx.Done()
		return nil
	})

	s.logger.Warn(fmt.Sprintf("%s v%s\nGit: %s\nBuildTime: %s\n", internalApp.Name, internalApp.Version, internalApp.GitTag, internalApp.BuildTime))
	s.logger.Warn("config loaded", zap.String("path", appConfig.File))

	// 启动调度器
	s.tasks = task.NewManager(s.logger, a)
	if err := s.tasks.RegisterTasks(); err != nil {
		cancel()
		_ = a.Shutdown(context.Background())
		return nil, fmt.Errorf("register tasks: %w", err)
	}
	s.tasks.Start(ctx)

	if httpAddr := appConfig.Server.PrivateHttpListen; len(httpAddr) > 0 {
		s.logger.Info("private_router", zap.String("config.server.PrivateHttpListen", httpAddr))
		s.privateHttpServer = &http.Server{
			Addr:              httpAddr,
			Handler:           routers.NewPrivateRouter(a),
			ReadHeaderTimeout: 10 * time.Second,
			MaxHeaderBytes:    1 << 20,
		}

		group.Go(func() error {
			err := s.privateHttpServer.ListenAndServe()
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			s.logger.Error("private api service err", zap.Error(err))
			return err
		})
		group.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			// 停止 HTTP 服务器
			if err := s.privateHttpServer.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("private api service shutdown error", zap.Error(err))
			}
			return nil
		})
	}

	return s, nil
}

// Done is closed when a component of the server failed and the server stopped itself
func (s *Server) Done() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		_ = s.group.Wait()
		close(done)
	}()
	return done
}

// Close 优雅关闭：停止调度与路由，等待进行中的备份，最后关闭应用容器
func (s *Server) Close() error {
	s.cancel()
	err := s.group.Wait()
	s.tasks.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if serr := s.app.Shutdown(ctx); serr != nil {
		s.logger.Error("failed to shutdown app container", zap.Error(serr))
		if err == nil {
			err = serr
		}
	} else {
		s.logger.Info("App container shutdown gracefully")
	}
	_ = s.logger.Sync()
	return err
}
