// Package apperr defines the error kinds surfaced to users by command
// parsing, task-list operations and persistence.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers that need to react to it (exit codes,
// JSON output) without matching on message text.
type Kind string

const (
	UnrecognizedCommand   Kind = "unrecognized_command"
	EmptyDescription      Kind = "empty_description"
	MultilineDescription  Kind = "multiline_description"
	MissingByMarker       Kind = "missing_by_marker"
	MissingDeadlineDate   Kind = "missing_deadline_date"
	MissingFromOrTo       Kind = "missing_from_or_to"
	EmptyEventSegment     Kind = "empty_event_segment"
	InvalidDate           Kind = "invalid_date"
	InvalidRange          Kind = "invalid_range"
	MissingIndex          Kind = "missing_index"
	InvalidIndex          Kind = "invalid_index"
	IndexOutOfRange       Kind = "index_out_of_range"
	MissingSearchCriteria Kind = "missing_search_criteria"
	CorruptRecord         Kind = "corrupt_record"
	UnknownTaskType       Kind = "unknown_task_type"
	PersistenceFailure    Kind = "persistence_failure"
)

// Sentinels for errors.Is. Only the kind is compared.
var (
	ErrUnrecognizedCommand   = &Error{Kind: UnrecognizedCommand}
	ErrEmptyDescription      = &Error{Kind: EmptyDescription}
	ErrMultilineDescription  = &Error{Kind: MultilineDescription}
	ErrMissingByMarker       = &Error{Kind: MissingByMarker}
	ErrMissingDeadlineDate   = &Error{Kind: MissingDeadlineDate}
	ErrMissingFromOrTo       = &Error{Kind: MissingFromOrTo}
	ErrEmptyEventSegment     = &Error{Kind: EmptyEventSegment}
	ErrInvalidDate           = &Error{Kind: InvalidDate}
	ErrInvalidRange          = &Error{Kind: InvalidRange}
	ErrMissingIndex          = &Error{Kind: MissingIndex}
	ErrInvalidIndex          = &Error{Kind: InvalidIndex}
	ErrIndexOutOfRange       = &Error{Kind: IndexOutOfRange}
	ErrMissingSearchCriteria = &Error{Kind: MissingSearchCriteria}
	ErrCorruptRecord         = &Error{Kind: CorruptRecord}
	ErrUnknownTaskType       = &Error{Kind: UnknownTaskType}
	ErrPersistenceFailure    = &Error{Kind: PersistenceFailure}
)

// Error is a user-facing failure. Message is safe to show as-is.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// New returns an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error of the given kind that keeps cause in its chain.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
