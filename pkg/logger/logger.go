package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// Init inicializa el logger global. En DEVELOPMENT se habilita el nivel debug.
func Init(env string) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"            // Logs estructurados en JSON
	cfg.EncoderConfig.TimeKey = "ts" // timestamp
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.CallerKey = "caller"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if env == "DEVELOPMENT" {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	log = l.With(zap.String("service", "storefront"))
}

// Logger retorna el logger estructurado
func Logger() *zap.Logger {
	return log
}

// Sync vacía los buffers; se llama al apagar.
func Sync() {
	_ = log.Sync()
}
