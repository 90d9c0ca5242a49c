package logger

import "nft_grinder/internal/app/port"

// slogAdapter реализует интерфейс port.Logger, используя глобальные функции пакета logger.
type slogAdapter struct {
	attrs []any
}

// NewSlogAdapter создает новый экземпляр slogAdapter.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

// With returns an adapter that appends the given key/value pairs to every message.
func With(args ...any) port.Logger {
	return &slogAdapter{attrs: args}
}

func (a *slogAdapter) merge(args []any) []any {
	if len(a.attrs) == 0 {
		return args
	}
	out := make([]any, 0, len(a.attrs)+len(args))
	out = append(out, a.attrs...)
	return append(out, args...)
}

// Info логирует информационное сообщение.
func (a *slogAdapter) Info(msg string, args ...any) {
	Info(msg, a.merge(args)...)
}

// Debug логирует отладочное сообщение.
func (a *slogAdapter) Debug(msg string, args ...any) {
	Debug(msg, a.merge(args)...)
}

// Warn логирует предупреждающее сообщение.
func (a *slogAdapter) Warn(msg string, args ...any) {
	Warn(msg, a.merge(args)...)
}

// Error логирует сообщение об ошибке.
func (a *slogAdapter) Error(msg string, args ...any) {
	Error(msg, a.merge(args)...)
}
