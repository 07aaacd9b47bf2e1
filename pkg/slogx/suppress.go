package slogx

import (
	"io"
	"log/slog"
)

// Quiet runs fn with the default slog logger swapped for one that discards
// every record. Embedded storage engines can be chatty on their hot paths,
// and their diagnostics land on the default logger; Quiet scopes the
// silence to the duration of fn and restores the previous logger on every
// exit path, including panics and error returns.
func Quiet(fn func() error) error {
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer slog.SetDefault(prev)
	return fn()
}
