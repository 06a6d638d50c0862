package errors

import "github.com/pkg/errors"

// StackTracer is implemented by errors that carry a stack trace. The logger
// probes for it when rendering an error entry.
type StackTracer interface {
	StackTrace() errors.StackTrace
}

// ErrorTracer pairs a message with an underlying cause. The cause always
// ends up with a stack trace attached, whether it arrived with one or not.
type ErrorTracer struct {
	Message string
	Err     error
}

// NewTracer creates an ErrorTracer with the provided message and no cause.
func NewTracer(message string) *ErrorTracer {
	return &ErrorTracer{
		Message: message,
	}
}

// TracerFromError wraps an existing error, reusing its message.
func TracerFromError(err error) *ErrorTracer {
	return NewTracer(err.Error()).Wrap(err)
}

// Wrap attaches a cause, adding a stack trace if the cause has none.
func (e *ErrorTracer) Wrap(err error) *ErrorTracer {
	e.Err = err
	if _, ok := err.(StackTracer); !ok {
		e.Err = errors.WithStack(err)
	}
	return e
}

func (e *ErrorTracer) Error() string {
	return e.Message
}

func (e *ErrorTracer) Unwrap() error {
	return e.Err
}

// StackTrace returns the cause's stack trace, or nil without a cause.
func (e *ErrorTracer) StackTrace() errors.StackTrace {
	if err, ok := e.Unwrap().(StackTracer); ok {
		return err.StackTrace()
	}
	return nil
}
