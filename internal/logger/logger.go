// Package logger builds the process-wide logrus instance. JSON output by
// default so log aggregators can index the request fields; LOG_FORMAT=text
// switches to the human-readable formatter for local runs.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

func New() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "text") {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	l.SetLevel(logrus.InfoLevel)
	if raw := strings.TrimSpace(os.Getenv("LOG_LEVEL")); raw != "" {
		if level, err := logrus.ParseLevel(raw); err == nil {
			l.SetLevel(level)
		} else {
			l.WithField("log_level", raw).Warn("unknown LOG_LEVEL, using info")
		}
	}
	return l
}
