package backup

import (
	"context"
	"errors"
)

var (
	// ErrInvalidData rejects a document before anything is modified.
	ErrInvalidData = errors.New("invalid data")
	// ErrImportFailed is a storage failure after the store was cleared.
	// The store may be partially populated.
	ErrImportFailed = errors.New("failed to import data")
	// ErrExportFailed wraps any store read error during export.
	ErrExportFailed = errors.New("failed to export data")
	// ErrImportInProgress is returned when another import holds the lock.
	ErrImportInProgress = errors.New("import already in progress")
)

// ValidationError describes why a document was rejected. It matches
// ErrInvalidData under errors.Is.
type ValidationError struct {
	Message string
	Detail  string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Message
	}
	return e.Message + ": " + e.Detail
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidData
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// WarningText must be shown to the user before an import is started.
const WarningText = "Importing replaces ALL existing data. Every employer, job, keyword, " +
	"activity, goal and skill currently stored will be permanently deleted and " +
	"replaced with the contents of the file. This cannot be undone. " +
	"Export a backup first if you may need the current data."

const (
	msgRejected   = "Import rejected: nothing changed."
	msgBusy       = "Another import is running: nothing changed."
	msgCancelled  = "Import cancelled: nothing changed."
	msgIncomplete = "Import failed: data may be incomplete. Restore from a backup."
)

// FailureMessage maps an Import error to the message shown to the user.
func FailureMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidData):
		return msgRejected
	case errors.Is(err, ErrImportInProgress):
		return msgBusy
	case errors.Is(err, ErrImportFailed):
		return msgIncomplete
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return msgCancelled
	default:
		return msgIncomplete
	}
}

// Unchanged reports whether the store is known to be untouched after err.
func Unchanged(err error) bool {
	return errors.Is(err, ErrInvalidData) ||
		errors.Is(err, ErrImportInProgress) ||
		(!errors.Is(err, ErrImportFailed) &&
			(errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)))
}
