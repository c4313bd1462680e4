package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger 创建带日志器的 Recovery 中间件
func RecoveryWithLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		defer func() {
			if err := recover(); err != nil {
				var errorMsg string
				switch v := err.(type) {
				case error:
					logger.Error("Recovered from panic",
						zap.String("router", path),
						zap.String("method", c.Request.Method),
						zap.String("query", query),
						zap.String("ip", c.ClientIP()),
						zap.Error(v),
						zap.String("stack", string(debug.Stack())),
					)
					errorMsg = v.Error()
				default:
					logger.Error("Recovered from unknown panic",
						zap.String("router", path),
						zap.String("method", c.Request.Method),
						zap.String("query", query),
						zap.String("ip", c.ClientIP()),
						zap.String("panic_value", fmt.Sprintf("%v", v)),
						zap.String("stack", string(debug.Stack())),
					)
					errorMsg = fmt.Sprintf("%v", v)
				}

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"status": "error", "message": errorMsg})
			}
		}()

		c.Next()
	}
}
