package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/priyanshuchauhan04/academics-analytics/pkg/metrics"
)

// Metrics 记录请求数与耗时，路由标签取注册时的模板路径
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		metrics.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
