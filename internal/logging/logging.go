package logging

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"edusp-proxy/internal/config"
)

// New builds a logger writing to stdout with the configured level and format.
func New(cfg config.LogConfig) *logrus.Logger {
	return newWithOutput(cfg, os.Stdout)
}

func newWithOutput(cfg config.LogConfig, out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if cfg.Format == "text" {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	}
	return l
}

// StdLogger adapts l for APIs that want a *log.Logger, such as http.Server.ErrorLog.
func StdLogger(l *logrus.Logger) *log.Logger {
	return log.New(l.WriterLevel(logrus.ErrorLevel), "", 0)
}
