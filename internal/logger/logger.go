package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

func init() {
	Logger = logrus.New()
	Logger.SetOutput(os.Stdout)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	Logger.SetLevel(logrus.InfoLevel)

	// LOG_LEVEL=debug wins over everything read later from the config file.
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		if parsedLevel, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
			Logger.SetLevel(parsedLevel)
		}
	}
}

// WithComponent adds a component field to the logger
func WithComponent(component string) *logrus.Entry {
	return Logger.WithField("component", component)
}

// ApplyLevel sets the logger level from a configured name unless LOG_LEVEL is set.
// Unknown names keep the current level and are reported back as an error.
func ApplyLevel(name string) error {
	if os.Getenv("LOG_LEVEL") != "" || name == "" {
		return nil
	}
	level, err := logrus.ParseLevel(strings.ToLower(name))
	if err != nil {
		return err
	}
	Logger.SetLevel(level)
	return nil
}
