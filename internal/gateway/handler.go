package gateway

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"edusp-proxy/internal/activity"
	"edusp-proxy/internal/upstream"
)

const (
	msgMethodNotAllowed = "Método não permitido."
	msgNotFound         = "Rota não encontrada."
	msgTooManyRequests  = "Muitas requisições. Tente novamente em instantes."
)

// Result is the outcome of one resolved request. Err is for logs only.
type Result struct {
	Intent activity.Intent
	Status int
	Body   any
	Err    error
}

// Resolve runs route selection, the upstream fetch and normalization.
// List failures become a 500 with a fixed message; detail failures degrade to
// a 200 carrying the fallback detail.
func (g *Gateway) Resolve(ctx context.Context, q activity.Query) Result {
	intent := activity.Select(q)

	switch intent.Kind {
	case activity.KindDetail:
		return g.resolveDetail(ctx, intent)
	case activity.KindExpired:
		body, err := g.lists.ListExpired(ctx)
		if err != nil {
			return g.fail(ctx, intent, err)
		}
		env, err := activity.NormalizeExpired(body)
		if err != nil {
			return g.fail(ctx, intent, err)
		}
		return Result{Intent: intent, Status: http.StatusOK, Body: env}
	default:
		body, err := g.lists.ListPending(ctx)
		if err != nil {
			return g.fail(ctx, intent, err)
		}
		env, err := activity.NormalizePending(body, g.policy)
		if err != nil {
			return g.fail(ctx, intent, err)
		}
		return Result{Intent: intent, Status: http.StatusOK, Body: env}
	}
}

func (g *Gateway) resolveDetail(ctx context.Context, intent activity.Intent) Result {
	body, err := g.details.TaskDetail(ctx, intent.TaskID)
	if err == nil {
		detail, nerr := activity.NormalizeDetail(intent.TaskID, body)
		if nerr == nil {
			return Result{Intent: intent, Status: http.StatusOK, Body: detail}
		}
		err = nerr
	}

	g.failureEntry(ctx, intent, err).Warn("task detail unavailable")
	return Result{Intent: intent, Status: http.StatusOK, Body: activity.DetailFallback(intent.TaskID), Err: err}
}

func (g *Gateway) fail(ctx context.Context, intent activity.Intent, err error) Result {
	g.failureEntry(ctx, intent, err).Error("upstream request failed")
	return Result{
		Intent: intent,
		Status: http.StatusInternalServerError,
		Body:   activity.ErrorBody{Message: activity.UpstreamFailure},
		Err:    err,
	}
}

func (g *Gateway) failureEntry(ctx context.Context, intent activity.Intent, err error) *logrus.Entry {
	fields := logrus.Fields{
		"intent":     intent.Kind.String(),
		"request_id": requestIDFrom(ctx),
	}
	if intent.TaskID != "" {
		fields["task_id"] = intent.TaskID
	}

	var ue *upstream.Error
	if errors.As(err, &ue) {
		fields["op"] = ue.Op
		fields["target"] = ue.URL
		fields["timeout"] = ue.Timeout()
		if ue.StatusCode != 0 {
			fields["upstream_status"] = ue.StatusCode
		}
		if ue.Body != "" {
			fields["upstream_body"] = ue.Body
		}
	}
	return g.logger.WithFields(fields).WithError(err)
}

// methodStatus maps an inbound method to the status that short-circuits it,
// or 0 when the request should be resolved.
func methodStatus(method string) int {
	switch method {
	case http.MethodGet, http.MethodHead:
		return 0
	case http.MethodOptions:
		return http.StatusNoContent
	default:
		return http.StatusMethodNotAllowed
	}
}

func (g *Gateway) handleActivities(c *gin.Context) {
	switch methodStatus(c.Request.Method) {
	case http.StatusNoContent:
		c.AbortWithStatus(http.StatusNoContent)
		return
	case http.StatusMethodNotAllowed:
		c.Header("Allow", "GET, HEAD, OPTIONS")
		c.JSON(http.StatusMethodNotAllowed, activity.ErrorBody{Message: msgMethodNotAllowed})
		return
	}

	var q activity.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		q = activity.Query{ID: c.Query("id"), Status: c.Query("status")}
	}

	res := g.Resolve(c.Request.Context(), q)
	c.Set(intentKey, res.Intent.Kind.String())
	c.JSON(res.Status, res.Body)
}

func (g *Gateway) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "edusp-proxy",
		"version": g.version,
	})
}

func (g *Gateway) handlePanic(c *gin.Context, err any) {
	g.logger.WithFields(logrus.Fields{
		"panic":      err,
		"request_id": requestIDFrom(c.Request.Context()),
		"path":       c.Request.URL.Path,
	}).Error("handler panicked")
	c.AbortWithStatusJSON(http.StatusInternalServerError, activity.ErrorBody{Message: activity.UpstreamFailure})
}
