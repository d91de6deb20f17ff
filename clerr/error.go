package clerr

import "fmt"

// Error is the structured error returned by Parse and Validate. It carries a
// closed Kind, an ordered context map, an optional wrapped value-parser
// error, and the name of the help surface (if any) a "for more information"
// hint should reference.
type Error struct {
	Kind    Kind
	context []contextEntry
	Source  error
	HelpRef string
}

// New creates an Error of the given kind with no context.
func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

// With attaches a context entry and returns the receiver for chaining.
func (e *Error) With(kind ContextKind, value ContextValue) *Error {
	e.context = append(e.context, contextEntry{Kind: kind, Value: value})
	return e
}

// WithString is a convenience wrapper around With for string-valued context.
func (e *Error) WithString(kind ContextKind, value string) *Error {
	return e.With(kind, ContextValue{String: value})
}

// WithStrings is a convenience wrapper around With for list-valued context.
func (e *Error) WithStrings(kind ContextKind, values []string) *Error {
	return e.With(kind, ContextValue{Strings: values})
}

// WithInt is a convenience wrapper around With for int-valued context.
func (e *Error) WithInt(kind ContextKind, value int) *Error {
	return e.With(kind, ContextValue{Int: value})
}

// WithSource attaches the underlying value-parser (or I/O) error being
// wrapped and returns the receiver.
func (e *Error) WithSource(err error) *Error {
	e.Source = err
	return e
}

// Context returns the context value recorded for kind, and whether one was
// recorded at all. When a kind is recorded more than once, the first
// recorded value is returned.
func (e *Error) Context(kind ContextKind) (ContextValue, bool) {
	for _, entry := range e.context {
		if entry.Kind == kind {
			return entry.Value, true
		}
	}

	return ContextValue{}, false
}

// Error implements the error interface. It intentionally produces a terse,
// mechanical message: rendering a rich diagnostic from the context map is an
// external collaborator's job, not the core's.
func (e *Error) Error() string {
	if e.Source != nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Source)
	}

	return e.Kind.String()
}

// Unwrap exposes the wrapped value-parser error to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Source
}

// IsDisplay reports whether this error is a control-flow display request
// rather than a genuine failure.
func (e *Error) IsDisplay() bool {
	return e.Kind.IsDisplay()
}

// ExitCode returns the advisory process exit code for this error.
func (e *Error) ExitCode() int {
	return e.Kind.ExitCode()
}
