package mqtt

import "go.uber.org/zap"

// newDefaultLogger is the logger a Client uses when the caller doesn't
// supply one via WithLogger.
func newDefaultLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
