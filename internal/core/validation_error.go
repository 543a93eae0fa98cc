package core

import "fmt"

// ValidationError reports the first semantic rule a schema violates.
// Path is a dotted, bracket-indexed qualifier into the document, such as
// "messages.Heartbeat.fields[2].optional_bit", pointing at the exact
// offending construct.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func validationErrorf(path, format string, args ...any) *ValidationError {
	return &ValidationError{Path: path, Message: fmt.Sprintf(format, args...)}
}
