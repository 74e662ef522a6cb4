// Package rendering paints composed blocks onto fixed-size PDF pages.
package rendering

import "fmt"

// RenderError represents a failure to produce the PDF bytes. Unlike image
// failures, which degrade to placeholders, it aborts the document.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
