package logging

import (
	"codeexplainer/config"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// InitLogger configures the standard logrus logger from cfg.
func InitLogger(cfg config.LoggingConfig) {
	// Set log level
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.Warnf("Invalid log level '%s', using 'info' instead. Error: %v", cfg.Level, err)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	// Set log format
	switch strings.ToLower(cfg.Format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	logrus.SetOutput(openOutput(cfg.Output))

	logrus.WithFields(logrus.Fields{
		"level":  level.String(),
		"format": cfg.Format,
		"output": cfg.Output,
	}).Info("Logger initialized successfully")
}

func openOutput(target string) io.Writer {
	switch strings.ToLower(target) {
	case "", "stdout":
		return os.Stdout
	case "stderr":
		return os.Stderr
	}

	file, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		logrus.Warnf("Failed to open log file '%s', using 'stdout' instead. Error: %v", target, err)
		return os.Stdout
	}
	return file
}
