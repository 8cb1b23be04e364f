// Package logging builds the process logger shared by the commands.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// New returns a JSON logger at Info level, or Debug in development.
// The standard logrus logger is configured the same way because the
// database package logs through it.
func New(development bool) *logrus.Logger {
	log := logrus.New()
	configure(log, os.Stdout, development)
	configure(logrus.StandardLogger(), os.Stdout, development)
	return log
}

func configure(log *logrus.Logger, out io.Writer, development bool) {
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	log.SetOutput(out)
	log.SetLevel(logrus.InfoLevel)

	if development {
		log.SetLevel(logrus.DebugLevel)
	}
}
