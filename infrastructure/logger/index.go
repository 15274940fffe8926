package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggerOptions struct {
	Key  string
	Data interface{}
}

// Logger is a no-op until InitializeLogger is called.
var Logger = zap.NewNop()

// InitializeLogger builds the process logger. Production encoding is used when ENV=prod.
func InitializeLogger() {
	var (
		built *zap.Logger
		err   error
	)
	if os.Getenv("ENV") == "prod" {
		built, err = zap.NewProduction()
	} else {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		built, err = cfg.Build()
	}
	if err != nil {
		panic(err)
	}
	Logger = built
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Logger.Sync()
}

func fields(payload []LoggerOptions) []zapcore.Field {
	zapFields := []zapcore.Field{}
	for _, data := range payload {
		zapFields = append(zapFields, zap.Any(data.Key, data.Data))
	}
	return zapFields
}

// This logs info level messages.
func Info(msg string, payload ...LoggerOptions) {
	Logger.Info(msg, fields(payload)...)
}

// This logs error messages.
// describe the incident in msg and pass the error through logger options
// with key error
func Error(msg string, payload ...LoggerOptions) {
	Logger.Error(msg, fields(payload)...)
}

// This logs warning messages.
func Warning(msg string, payload ...LoggerOptions) {
	Logger.Warn(msg, fields(payload)...)
}
