package streamable

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var runLogger atomic.Pointer[zerolog.Logger]

func init() {
	SetLogger(zerolog.Nop())
}

// SetLogger sets logger used to trace stream runs.
// Runs report their lifecycle and stop requests at debug level.
// Default logger discards everything.
func SetLogger(l zerolog.Logger) {
	runLogger.Store(&l)
}

func currentLogger() zerolog.Logger {
	return *runLogger.Load()
}
