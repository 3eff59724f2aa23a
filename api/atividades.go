package handler

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"

	"edusp-proxy/internal/activity"
	"edusp-proxy/internal/config"
	"edusp-proxy/internal/gateway"
	"edusp-proxy/internal/logging"
	"edusp-proxy/internal/version"
)

var (
	once           sync.Once
	defaultHandler http.Handler
)

func setup() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Error("configuration rejected")
		defaultHandler = http.HandlerFunc(unavailable)
		return
	}
	defaultHandler = gateway.FromConfig(cfg, logging.New(cfg.Log), version.Version).Handler()
}

func unavailable(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(activity.ErrorBody{Message: activity.UpstreamFailure})
}

// Handler is the entry point for Vercel's Go runtime.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(setup)
	defaultHandler.ServeHTTP(w, r)
}
