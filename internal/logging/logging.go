// Package logging configures the process-wide logrus logger and provides the
// gin request logger.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger. format is "text" or "json".
func Setup(level, format string) error {
	return Configure(logrus.StandardLogger(), os.Stdout, level, format)
}

// Configure applies level, format and output to l.
func Configure(l *logrus.Logger, out io.Writer, level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	l.SetLevel(lvl)
	l.SetOutput(out)

	switch format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid log format %q", format)
	}
	return nil
}
