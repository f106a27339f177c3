package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Configure sets up the process-wide logrus logger. Unknown levels fall
// back to info; format is "json" or anything else for text.
func Configure(out io.Writer, level, format string) *logrus.Logger {
	logger := logrus.StandardLogger()
	logger.SetOutput(out)

	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		parsed = logrus.InfoLevel
		logger.WithField("value", level).Warn("invalid log level, using info")
	}
	logger.SetLevel(parsed)

	if strings.EqualFold(strings.TrimSpace(format), "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
