// Package routers ops HTTP router of the daemon
// Package routers 守护进程的运维路由
package routers

import (
	"net/http"

	"github.com/haierkeys/fast-ledger-sync-service/internal/app"
	"github.com/haierkeys/fast-ledger-sync-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewPrivateRouter creates the ops router: /metrics, /health, /history and pprof in debug mode
// NewPrivateRouter 创建运维路由
func NewPrivateRouter(appContainer *app.App) *gin.Engine {
	cfg := appContainer.Config()
	lg := appContainer.Logger()

	r := gin.New()
	r.Use(middleware.AccessLog(lg))
	if cfg.Server.RunMode == gin.DebugMode {
		r.Use(gin.Recovery())
	} else {
		r.Use(middleware.RecoveryWithLogger(lg))
	}

	// prom监控
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(appContainer.Metrics.Registry, promhttp.HandlerOpts{})))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"name":    app.Name,
			"version": app.GetVersion(),
		})
	})

	// 同步历史，最新在前
	r.GET("/history", func(c *gin.Context) {
		list, err := appContainer.BackupService.History(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "data": list})
	})

	if cfg.Server.RunMode == gin.DebugMode {
		registerPprof(r.Group(DefaultPrefix))
	}

	return r
}
