// Package catalog holds the immutable content templates, themes and agency profile.
package catalog

import (
	"fmt"

	"github.com/jonathan/docforge/internal/types"
)

// NotFoundError is returned when no template is registered for a (kind, industry) pair.
// Callers recover from it by falling back to the default template.
type NotFoundError struct {
	Kind     types.DocumentKind
	Industry string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s template for industry %q", e.Kind, e.Industry)
}

// LoadError represents errors reading or validating catalog data
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
