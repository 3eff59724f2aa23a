package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"edusp-proxy/internal/activity"
	"edusp-proxy/internal/config"
	"edusp-proxy/internal/upstream"
)

// FromConfig wires the upstream client and the gateway from loaded configuration.
func FromConfig(cfg *config.Config, logger logrus.FieldLogger, version string) *Gateway {
	client := upstream.New(upstream.Config{
		BaseURL:            cfg.Upstream.BaseURL,
		APIKey:             cfg.Upstream.APIKey,
		UserAgent:          cfg.Upstream.UserAgent,
		PublicationTargets: cfg.Upstream.PublicationTargets,
		Timeout:            cfg.Upstream.Timeout,
		Client:             &http.Client{},
	})

	var details upstream.DetailSource = client
	if cfg.Upstream.DetailSource == "sample" {
		details = upstream.SampleDetails{}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Upstream.APIKey == "" && logger != nil {
		logger.Warn("EDUSP_API_KEY is not set; upstream calls will be rejected")
	}

	return New(Config{
		Lists:         client,
		Details:       details,
		PendingPolicy: activity.PendingPolicy(cfg.Upstream.PendingPolicy),
		Paths:         cfg.Paths,
		AllowedOrigin: cfg.AllowedOrigin,
		RateLimit:     rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:     cfg.RateLimit.Burst,
		Logger:        logger,
		Version:       version,
	})
}
