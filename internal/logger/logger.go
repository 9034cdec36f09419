package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
)

const (
	logEnvKey     = "LOG_ENV"
	defaultLogEnv = "dev"
)

var logger *zap.Logger

func init() {
	env := os.Getenv(logEnvKey)
	if env == "" {
		env = defaultLogEnv
	}

	var err error
	switch env {
	case "dev":
		logger, err = zap.NewDevelopment()
	case "prod":
		logger, err = zap.NewProduction()
	case "test":
		logger = zap.NewNop()
	}

	if err != nil || logger == nil {
		log.Fatal("logger init", err)
	}
}

func Debug(msg string, fields ...zap.Field) {
	logger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	logger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	logger.Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	logger.Fatal(msg, fields...)
}

// Sync flushes buffered entries, call it before exit.
func Sync() {
	_ = logger.Sync()
}
