// Package assets resolves image references into bytes ready for embedding in a PDF.
package assets

import (
	"errors"
	"fmt"
)

var errImageSize = errors.New("image dimensions out of range")

// Error represents a failure to load or decode one image. It is recovered by
// substituting a placeholder and never aborts a document.
type Error struct {
	Ref     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("asset %s: %s: %v", e.Ref, e.Message, e.Cause)
	}
	return fmt.Sprintf("asset %s: %s", e.Ref, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
