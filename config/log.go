package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NamedLogger creates a named package logger.
func NamedLogger(name string) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	return l.WithField("pkg", name)
}
