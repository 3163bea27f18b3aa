package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// SetupLogging configures the process logger: JSON to stdout, info level
// (debug when LOG_DEBUG is set).
func SetupLogging() *logrus.Logger {
	level := logrus.InfoLevel
	if os.Getenv("LOG_DEBUG") != "" {
		level = logrus.DebugLevel
	}

	logger := logrus.Logger{
		Formatter: &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		},
		Out:   os.Stdout,
		Level: level,
	}

	return &logger
}
