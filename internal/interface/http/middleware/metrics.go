package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/furnistore/pkg/metrics"
)

// RequestMetrics HTTP请求指标中间件
// 设计说明：
// 1. 记录请求总数、耗时分布、正在处理的请求数
// 2. path标签用路由模板（/api/v1/furniture/:id）而不是实际URL，
//    否则每个商品ID都会产生一个新的时间序列（高基数问题）
// 3. 未匹配任何路由的请求（404）FullPath为空，统一记为unmatched
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.HTTPRequestsInProgress.Inc()

		c.Next()

		metrics.HTTPRequestsInProgress.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
