// Package logx builds the host's zerolog logger and adapts it to the
// firmware's line-oriented logging interface.
package logx

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const consoleTimeFormat = "15:04:05.000"

// New returns a console logger writing to w at the named level.
func New(w io.Writer, level string) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if s := strings.TrimSpace(level); s != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(s))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("logx: invalid level %q: %w", level, err)
		}
		lvl = parsed
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: consoleTimeFormat}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// Lines writes each firmware log line as one info event.
//
// With a limit set, lines beyond the rate are dropped and counted.
type Lines struct {
	l       zerolog.Logger
	limiter *rate.Limiter
	dropped atomic.Uint64
}

func NewLines(l zerolog.Logger) *Lines {
	return &Lines{l: l}
}

// WithRate limits l to perSec lines per second with the given burst.
// perSec <= 0 removes the limit.
func (ln *Lines) WithRate(perSec float64, burst int) *Lines {
	if perSec <= 0 {
		ln.limiter = nil
		return ln
	}
	if burst < 1 {
		burst = 1
	}
	ln.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
	return ln
}

func (ln *Lines) WriteLineString(s string) {
	if ln.limiter != nil && !ln.limiter.Allow() {
		ln.dropped.Add(1)
		return
	}
	ln.l.Info().Str("src", "fw").Msg(s)
}

func (ln *Lines) WriteLineBytes(b []byte) {
	ln.WriteLineString(string(b))
}

// Dropped returns how many lines the rate limit discarded.
func (ln *Lines) Dropped() uint64 { return ln.dropped.Load() }
