package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"k8s.io/klog/v2"
)

// RequestLog 记录每个请求的方法、路径、状态码和耗时
// 透传或生成 X-Request-ID，便于跨服务排查问题
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		requestID := c.Request.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header("X-Request-ID", requestID)
		c.Set("RequestID", requestID)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		switch {
		case status >= 500:
			klog.Errorf("request_id=%s %s %s status=%d latency=%v", requestID, c.Request.Method, path, status, latency)
		case status >= 400:
			klog.Warningf("request_id=%s %s %s status=%d latency=%v", requestID, c.Request.Method, path, status, latency)
		default:
			klog.V(6).Infof("request_id=%s %s %s?%s status=%d latency=%v", requestID, c.Request.Method, path, query, status, latency)
		}
	}
}
