package space

import (
	"io"

	"github.com/sirupsen/logrus"
)

// discardLogger is used by any component that was not given an explicit
// logger via WithLogger, so importing this package never forces log output
// onto a consumer.
var discardLogger = func() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}()

// LogOption configures the logger a Space or SpaceManager uses for its
// Debug diagnostics. Every component that accepts a logger
// stores a *logrus.Entry it can further scope with its own field.
type LogOption func(*logOptions)

type logOptions struct {
	log *logrus.Entry
}

func newLogOptions() *logOptions {
	return &logOptions{log: discardLogger}
}

// WithLogger scopes a component's diagnostics to the given logrus entry.
func WithLogger(entry *logrus.Entry) LogOption {
	return func(o *logOptions) {
		if entry != nil {
			o.log = entry
		}
	}
}
