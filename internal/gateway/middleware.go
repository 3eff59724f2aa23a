package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"edusp-proxy/internal/activity"
)

const (
	requestIDHeader = "X-Request-ID"
	intentKey       = "intent"
)

type ctxKey struct{}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// requestID reuses an inbound X-Request-ID or mints one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(withRequestID(c.Request.Context(), id))
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func corsHeaders(origin string) map[string]string {
	h := map[string]string{
		"Access-Control-Allow-Origin":  origin,
		"Access-Control-Allow-Methods": "GET,HEAD,OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type,Authorization,Accept," + requestIDHeader,
	}
	if origin != "*" {
		h["Vary"] = "Origin"
	}
	return h
}

func (g *Gateway) cors() gin.HandlerFunc {
	headers := corsHeaders(g.allowedOrigin)
	return func(c *gin.Context) {
		for k, v := range headers {
			c.Header(k, v)
		}
		c.Next()
	}
}

func (g *Gateway) rateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if methodStatus(c.Request.Method) == 0 && !g.limiter.Allow() {
			g.logger.WithFields(logrus.Fields{
				"client_ip":  c.ClientIP(),
				"path":       c.Request.URL.Path,
				"request_id": requestIDFrom(c.Request.Context()),
			}).Warn("rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, activity.ErrorBody{Message: msgTooManyRequests})
			return
		}
		c.Next()
	}
}

func fmtDur(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// logLine emits one line per request, leveled by status.
func (g *Gateway) logLine(kind, method, uri, reqID string, status, bytes int, dur time.Duration) {
	if kind == "" {
		kind = "-"
	}
	if bytes < 0 {
		bytes = 0
	}
	entry := g.logger.WithFields(logrus.Fields{
		"kind":       kind,
		"method":     method,
		"status":     status,
		"bytes":      bytes,
		"dur":        fmtDur(dur),
		"latency_ms": float64(dur.Nanoseconds()) / 1e6,
		"path":       uri,
		"request_id": reqID,
	})

	switch {
	case status >= 500:
		entry.Error("request failed")
	case status >= 400:
		entry.Warn("request rejected")
	default:
		entry.Info("request completed")
	}
}

func (g *Gateway) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		g.logLine(
			c.GetString(intentKey),
			c.Request.Method,
			c.Request.URL.RequestURI(),
			requestIDFrom(c.Request.Context()),
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start),
		)
	}
}
