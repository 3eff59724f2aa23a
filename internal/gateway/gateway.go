package gateway

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"edusp-proxy/internal/activity"
	"edusp-proxy/internal/upstream"
)

// ListSource represents the list operations of the task service.
type ListSource interface {
	ListPending(ctx context.Context) ([]byte, error)
	ListExpired(ctx context.Context) ([]byte, error)
}

// Config provides all the dependencies required to build a Gateway.
type Config struct {
	Lists         ListSource
	Details       upstream.DetailSource
	PendingPolicy activity.PendingPolicy
	Paths         []string
	AllowedOrigin string
	RateLimit     rate.Limit
	RateBurst     int
	Logger        logrus.FieldLogger
	Version       string
}

// Gateway resolves activity requests against the task service.
type Gateway struct {
	lists         ListSource
	details       upstream.DetailSource
	policy        activity.PendingPolicy
	paths         []string
	allowedOrigin string
	limiter       *rate.Limiter
	logger        logrus.FieldLogger
	version       string
	engine        *gin.Engine
}

// New constructs a Gateway from the provided configuration, applying defaults.
// When Details is nil and Lists can also fetch details, Lists is used for both.
func New(cfg Config) *Gateway {
	g := &Gateway{
		lists:         cfg.Lists,
		details:       cfg.Details,
		policy:        cfg.PendingPolicy,
		paths:         append([]string(nil), cfg.Paths...),
		allowedOrigin: cfg.AllowedOrigin,
		logger:        cfg.Logger,
		version:       cfg.Version,
	}

	if g.lists == nil {
		g.lists = upstream.New(upstream.Config{})
	}
	if g.details == nil {
		if ds, ok := g.lists.(upstream.DetailSource); ok {
			g.details = ds
		} else {
			g.details = upstream.SampleDetails{}
		}
	}
	if g.policy == "" {
		g.policy = activity.PolicyListOnly
	}
	if len(g.paths) == 0 {
		g.paths = []string{"/api/atividades", "/"}
	}
	if g.allowedOrigin == "" {
		g.allowedOrigin = "*"
	}
	if g.logger == nil {
		g.logger = logrus.StandardLogger()
	}
	if g.version == "" {
		g.version = "dev"
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(cfg.RateLimit, burst)
	}

	g.engine = g.routes()
	return g
}

func (g *Gateway) routes() *gin.Engine {
	r := gin.New()
	r.Use(
		gin.CustomRecoveryWithWriter(io.Discard, g.handlePanic),
		requestID(),
		g.cors(),
		g.requestLogger(),
	)
	if g.limiter != nil {
		r.Use(g.rateLimiter())
	}

	r.GET("/healthz", g.handleHealth)
	for _, path := range g.paths {
		r.Any(path, g.handleActivities)
	}
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, activity.ErrorBody{Message: msgNotFound})
	})
	return r
}

// Handler returns the http.Handler serving every gateway route.
func (g *Gateway) Handler() http.Handler {
	return g.engine
}

// Register attaches the gateway to the provided mux at its root.
func (g *Gateway) Register(mux *http.ServeMux) {
	mux.Handle("/", g.engine)
}
