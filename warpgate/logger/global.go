package logger

import "log/slog"

// LogSystem logs system events
func LogSystem(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "sys")}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogError logs error events
func LogError(msg string, err error, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(baseAttrs, attrs...)...)
}

// LogAudit records use of admin affordances such as bypass flags.
func LogAudit(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "audit")}
	slog.Warn(msg, append(baseAttrs, attrs...)...)
}
