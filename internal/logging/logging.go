// Package logging builds the process logger.
package logging

import (
	"io"

	"github.com/go-kratos/kratos/v2/log"
)

// New returns a logger writing to w with timestamp and caller, dropping
// entries below level. Unknown level names fall back to info.
func New(w io.Writer, level string) log.Logger {
	logger := log.With(log.NewStdLogger(w),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
	)
	return log.NewFilter(logger, log.FilterLevel(log.ParseLevel(level)))
}
