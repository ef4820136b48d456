package core

import "fmt"

// ErrorKind is the stable, client-facing error taxonomy this toolkit exposes.
type ErrorKind string

const (
	// InvalidContainer indicates bad magic or a truncated header.
	InvalidContainer ErrorKind = "InvalidContainer"
	// UnsupportedVariant indicates magic and version matched no known
	// (game, platform) combination.
	UnsupportedVariant ErrorKind = "UnsupportedVariant"
	// DecompressFailed indicates no candidate stream yielded output, or a
	// block rejected DEFLATE.
	DecompressFailed ErrorKind = "DecompressFailed"
	// ZoneCorrupt indicates an expected structure was not found.
	ZoneCorrupt ErrorKind = "ZoneCorrupt"
	// EditTooLarge indicates an in-place patch would grow a region beyond
	// its slot.
	EditTooLarge ErrorKind = "EditTooLarge"
	// RebuildNeeded is non-fatal: the orchestrator surfaces it to the
	// client for confirmation when unparsed assets are present.
	RebuildNeeded ErrorKind = "RebuildNeeded"
	// IoFailed indicates a file-system error; the cause is wrapped.
	IoFailed ErrorKind = "IoFailed"
	// BoundsExceeded indicates a bounded read or slice ran past the end of
	// its buffer.
	BoundsExceeded ErrorKind = "BoundsExceeded"
)

// Error is the error type every public core operation returns on failure.
// It carries a stable Kind plus an optional wrapped cause, so clients can
// branch with errors.As without parsing message text.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds an Error with no wrapped cause.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error wrapping an underlying cause.
func Wrap(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}
