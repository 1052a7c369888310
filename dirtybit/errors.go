package dirtybit

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Error is a failure of one pipeline step. Its kind stays reachable through
// errors.Is however many messages or causes are attached to it.
type Error interface {
	error
	WithMessage(message string) Error
	Wrap(err error) Error
}

type kindError string

// Failure kinds. The text of each kind is the line printed for the operator.
const (
	ErrSyntax                = kindError("Syntax error.")
	ErrAccess                = kindError("Unable to access the specified drive.")
	ErrUnsupportedFilesystem = kindError("Not a FAT32 or exFAT file system.")
	ErrRead                  = kindError("Reading drive data failed.")
	ErrWrite                 = kindError("Unable to clear the dirty bit.")
)

// WriteRemediation is printed after ErrWrite. Writes to raw sectors are the
// step most often blocked by controlled folder access.
const WriteRemediation = "Ensure Windows Defender allows this app to make changes in controlled folders."

var kinds = []kindError{ErrSyntax, ErrAccess, ErrUnsupportedFilesystem, ErrRead, ErrWrite}

func (e kindError) Error() string {
	return string(e)
}

func (e kindError) WithMessage(message string) Error {
	return customError{
		message:       fmt.Sprintf("%s: %s", e.Error(), message),
		originalError: e,
	}
}

func (e kindError) Wrap(err error) Error {
	return customError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

type customError struct {
	message       string
	originalError error
}

func (e customError) Error() string {
	return e.message
}

func (e customError) WithMessage(message string) Error {
	return customError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customError) Wrap(err error) Error {
	return customError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customError) Unwrap() error {
	return e.originalError
}

// Message returns the operator-facing line for err: the text of its kind, or
// the full error text when err carries no kind.
func Message(err error) string {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}

	return err.Error()
}
