package logger

import (
	"fmt"
	"log/slog"
)

// LogError logs a formatted error message.
func LogError(format string, args ...interface{}) {
	slog.Error(fmt.Sprintf(format, args...))
}
