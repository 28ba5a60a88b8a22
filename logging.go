package schedcore

import (
	"io"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the structured logger type used throughout schedcore: a
// generic logiface.Logger configured with the stumpy JSON backend.
type Logger = logiface.Logger[*stumpy.Event]

// defaultLogger returns a silent logger (writes discarded).
func defaultLogger() *Logger {
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(io.Discard)),
	)
}
