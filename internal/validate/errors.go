package validate

import (
	"fmt"
	"strings"
)

// Classifies a validation failure.
//
// Each kind maps to a fixed process exit code. The codes are negative small
// integers by convention; external scripts depend on the exact values, so the
// mapping must not change.
type Kind int

const (
	KindPermissionDenied Kind = iota + 1
	KindConflictingModeAndCommand
	KindConflictingModeAndMakefile
	KindMakefileNotFound
	KindUnquotedMakeCommand
	KindSourceNotFound
	KindSourceWrongExtension
)

// Exit codes, one per validation failure kind.
var exitCodes = map[Kind]int{
	KindPermissionDenied:           -1,
	KindConflictingModeAndCommand:  -2,
	KindConflictingModeAndMakefile: -3,
	KindMakefileNotFound:           -4,
	KindUnquotedMakeCommand:        -5,
	KindSourceNotFound:             -6,
	KindSourceWrongExtension:       -7,
}

// Returns the process exit code for this failure kind.
func (k Kind) ExitCode() int {
	if code, ok := exitCodes[k]; ok {
		return code
	}
	return 1
}

// A validation failure carrying its kind and, for source file failures, the
// full set of offending paths.
type Error struct {
	Kind  Kind     // Failure classification.
	msg   string   // Human-readable description.
	Paths []string // Offending paths, sorted. Nil for flag conflicts.
}

// Returns the failure description, enumerating offending paths when present.
func (e *Error) Error() string {
	if len(e.Paths) == 0 {
		return e.msg
	}
	return fmt.Sprintf("%s: %s", e.msg, strings.Join(e.Paths, ", "))
}

// Creates a validation error for a flag-level failure.
func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, msg: msg}
}

// Creates a validation error enumerating offending file paths.
func newPathsError(kind Kind, msg string, paths []string) *Error {
	return &Error{Kind: kind, msg: msg, Paths: paths}
}
