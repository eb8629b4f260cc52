package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger tagged with app. Debug enables debug-level
// events; otherwise only warnings and above are written.
func New(w io.Writer, app string, debug bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", app).Logger()
}
