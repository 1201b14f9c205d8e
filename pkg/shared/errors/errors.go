package errors

import "fmt"

const (
	// ExitUsage marks invalid arguments or configuration.
	ExitUsage = 1
	// ExitInput marks an unreadable or malformed SARIF document.
	ExitInput = 2
	// ExitPublish marks a failure while delivering the rendered report.
	ExitPublish = 3
)

// CommandError represents an error that occurred during command execution, storing the options it ran with.
type CommandError struct {
	ExitCode    int
	CommonError string
	Options     interface{}
	err         error
}

// Error implements the error interface, returning the message from the common error.
func (e *CommandError) Error() string {
	return e.CommonError
}

// Unwrap exposes the underlying cause.
func (e *CommandError) Unwrap() error {
	return e.err
}

// NewCommandError creates a new CommandError instance, encapsulating options and the error message.
func NewCommandError(options interface{}, err error, code int) *CommandError {
	return &CommandError{
		ExitCode:    code,
		CommonError: err.Error(),
		Options:     options,
		err:         err,
	}
}

// Usage builds an ExitUsage CommandError from a formatted message.
func Usage(options interface{}, format string, args ...interface{}) *CommandError {
	return NewCommandError(options, fmt.Errorf(format, args...), ExitUsage)
}
