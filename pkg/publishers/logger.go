package publishers

import "github.com/hidro-hq/ana-telemetry/internal/logger"

// Logger is the structured logger publishers report delivery through.
type Logger = logger.Logger

type noopLogger = logger.NopLogger

func ensureLogger(log Logger) Logger {
	if log == nil {
		return noopLogger{}
	}
	return log
}
