// Package schemas provides JSON Schema validation for inbound document payloads.
package schemas

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/jonathan/docforge/internal/errs"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed proposal_intake.schema.json
var proposalIntakeSchema string

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

var (
	intakeOnce   sync.Once
	intakeSchema *gojsonschema.Schema
	intakeErr    error
)

// compiledIntakeSchema compiles the embedded intake schema once per process.
// A compiled *gojsonschema.Schema is immutable and safe for concurrent use.
func compiledIntakeSchema() (*gojsonschema.Schema, error) {
	intakeOnce.Do(func() {
		intakeSchema, intakeErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(proposalIntakeSchema))
		if intakeErr != nil {
			intakeErr = &SchemaLoadError{
				Path:    "proposal_intake.schema.json",
				Message: "failed to compile embedded schema",
				Cause:   intakeErr,
			}
		}
	})
	return intakeSchema, intakeErr
}

// ProposalIntakeSchema returns the raw embedded intake schema.
func ProposalIntakeSchema() string {
	return proposalIntakeSchema
}

// ValidateProposalIntake validates a JSON document against the proposal intake schema.
// Schema violations are returned as *errs.ValidationError with one entry per failed check.
func ValidateProposalIntake(jsonContent []byte) error {
	schema, err := compiledIntakeSchema()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(jsonContent))
	if err != nil {
		return errs.NewValidationError("(root)", fmt.Sprintf("payload is not valid JSON: %v", err))
	}
	return toValidationError(result)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}
	return toValidationError(result)
}

// toValidationError converts a gojsonschema result into the engine's structured error.
// Required-property failures are reported at the missing property's path rather
// than at its parent object.
func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &errs.ValidationError{
		Errors: make([]errs.FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if desc.Type() == "required" {
			if prop, ok := desc.Details()["property"].(string); ok && prop != "" {
				if field == "(root)" || field == "" {
					field = prop
				} else {
					field = field + "." + prop
				}
			}
		}
		if field == "" {
			field = "(root)"
		}
		validationErr.Add(field, desc.Description())
	}

	return validationErr
}
