package port

// Logger is the structured logger services receive. args are slog-style key/value pairs,
// e.g. logger.Info("Pair processed", "wallet", w, "chain", c).
type Logger interface {
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
