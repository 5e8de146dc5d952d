package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys the conversion handlers fill in for the access log.
const (
	ConversionSourceKey   = "conversion_source"
	ConversionStrategyKey = "conversion_strategy"
	ErrorKindKey          = "error_kind"
	ErrorReasonKey        = "error_reason"
)

// conversionKeys are logged under their own names when a handler set them.
var conversionKeys = []string{ConversionSourceKey, ConversionStrategyKey, ErrorKindKey, ErrorReasonKey}

// RequestLogger logs one line per request once the handler chain has run.
// Conversion requests also carry their source, the strategy that answered and,
// on failure, the error kind and reason.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}

		if route := c.FullPath(); route != "" {
			fields = append(fields, zap.String("route", route))
		}
		if size := c.Writer.Size(); size > 0 {
			fields = append(fields, zap.Int("bytes_out", size))
		}
		if id := c.GetString(RequestIDKey); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}
		for _, key := range conversionKeys {
			if v := c.GetString(key); v != "" {
				fields = append(fields, zap.String(key, v))
			}
		}
		if query != "" {
			fields = append(fields, zap.String("query", query))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			logger.Error("request failed", fields...)
		case status >= 400:
			logger.Warn("client error", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}
