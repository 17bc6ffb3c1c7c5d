package httperr

import (
	"errors"
	"fmt"
	"strings"
)

// RemoteError is any failed read or write against the data gateway.
type RemoteError struct {
	Operation string
	Cause     error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote operation %s failed: %v", e.Operation, e.Cause)
}

func (e *RemoteError) Unwrap() error {
	return e.Cause
}

func Remote(operation string, cause error) error {
	if cause == nil {
		return nil
	}
	return &RemoteError{Operation: operation, Cause: cause}
}

// ValidationError is raised before any write is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError covers rows that do not exist and rows hidden by the
// caller's authorization scope.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func NotFoundEntity(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// PartialWriteError reports the failed steps of a multi-step write. Steps
// that succeeded before or after the failures are kept.
type PartialWriteError struct {
	RootID string
	Failed []string
	Causes []error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("partial write for %s: failed steps [%s]", e.RootID, strings.Join(e.Failed, ", "))
}

func (e *PartialWriteError) Unwrap() []error {
	return e.Causes
}

func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsPartialWrite(err error) bool {
	var pw *PartialWriteError
	return errors.As(err, &pw)
}
