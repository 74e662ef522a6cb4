// Package dispatch infers the document kind from a raw payload and names the output file.
package dispatch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/docforge/internal/errs"
	"github.com/jonathan/docforge/internal/schemas"
	"github.com/jonathan/docforge/internal/types"
)

// proposalKeys are the intake fields; a payload carrying none of them is not a proposal.
var proposalKeys = []string{
	"clientName", "clientEmail", "clientPhone", "businessName",
	"industry", "services", "budget", "timeline",
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Classify selects the document pipeline for payload. Discriminators are tried in
// a fixed order and the first match wins:
//  1. an "invoice" object with "invoiceNumber" or "items"
//  2. string "title" and "content" fields
//  3. a proposal intake form, validated against its schema
//
// A payload that is not a JSON object, or that matches no shape, is a *errs.UsageError.
// A payload that matches a shape but fails its checks is a *errs.ValidationError.
func Classify(payload []byte) (*types.DocumentRequest, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil || fields == nil {
		return nil, &errs.UsageError{Message: "payload must be a JSON object"}
	}

	var (
		req *types.DocumentRequest
		err error
	)
	switch {
	case isInvoice(fields):
		req, err = decodeInvoice(payload)
	case isString(fields["title"]) && isString(fields["content"]):
		req, err = decodeContract(payload)
	case hasAny(fields, proposalKeys):
		req, err = decodeProposal(payload)
	default:
		return nil, &errs.UsageError{Message: "no document shape matched: expected an invoice, a contract (title and content) or a proposal intake"}
	}
	if err != nil {
		return nil, err
	}

	if err := applyEnvelope(req, fields); err != nil {
		return nil, err
	}
	return req, nil
}

func isInvoice(fields map[string]json.RawMessage) bool {
	raw, ok := fields["invoice"]
	if !ok {
		return false
	}
	var inner map[string]json.RawMessage
	if err := json.Unmarshal(raw, &inner); err != nil || inner == nil {
		return false
	}
	_, hasNumber := inner["invoiceNumber"]
	_, hasItems := inner["items"]
	return hasNumber || hasItems
}

func isString(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '"'
}

func hasAny(fields map[string]json.RawMessage, keys []string) bool {
	for _, k := range keys {
		if _, ok := fields[k]; ok {
			return true
		}
	}
	return false
}

func decodeInvoice(payload []byte) (*types.DocumentRequest, error) {
	var inv types.InvoiceRequest
	if err := json.Unmarshal(payload, &inv); err != nil {
		return nil, decodeError("", err)
	}
	return types.NewInvoiceRequest(&inv), nil
}

func decodeContract(payload []byte) (*types.DocumentRequest, error) {
	var c types.ContractRequest
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, decodeError("", err)
	}
	return types.NewContractRequest(&c), nil
}

func decodeProposal(payload []byte) (*types.DocumentRequest, error) {
	if err := schemas.ValidateProposalIntake(payload); err != nil {
		return nil, err
	}

	var intake types.ProposalIntake
	if err := json.Unmarshal(payload, &intake); err != nil {
		return nil, decodeError("", err)
	}
	if err := validateStruct("", &intake); err != nil {
		return nil, err
	}
	return types.NewProposalRequest(&intake), nil
}

// applyEnvelope copies the theme, agency and override fields that ride along
// with every document shape.
func applyEnvelope(req *types.DocumentRequest, fields map[string]json.RawMessage) error {
	if raw, ok := fields["themeId"]; ok && !isNull(raw) {
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return errs.NewValidationError("themeId", "must be a string")
		}
		req.ThemeID = strings.TrimSpace(id)
	}

	if raw, ok := fields["agency"]; ok && !isNull(raw) {
		var agency types.AgencyProfile
		if err := json.Unmarshal(raw, &agency); err != nil {
			return decodeError("agency", err)
		}
		if err := validateStruct("agency.", &agency); err != nil {
			return err
		}
		req.Agency = &agency
	}

	if raw, ok := fields["overrides"]; ok && !isNull(raw) {
		var set types.OverrideSet
		if err := json.Unmarshal(raw, &set); err != nil {
			return errs.NewValidationError("overrides", "must be an object of images, texts and heights maps")
		}
		req.Overrides = set
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || string(raw) == "null"
}

// validateStruct runs struct tag validation and reports failures with JSON field paths.
func validateStruct(prefix string, v any) error {
	err := structValidator.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errs.NewValidationError(strings.TrimSuffix(prefix, "."), err.Error())
	}
	out := &errs.ValidationError{}
	for _, fe := range verrs {
		field := fe.Namespace()
		if _, rest, found := strings.Cut(field, "."); found {
			field = rest
		}
		out.Add(prefix+field, fmt.Sprintf("failed %s check", fe.Tag()))
	}
	return out
}

// decodeError converts a JSON type mismatch into a field-level validation error.
// prefix names the object that was decoded; "" means the payload itself.
func decodeError(prefix string, err error) error {
	field := prefix
	if field == "" {
		field = "(root)"
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		if prefix == "" {
			field = typeErr.Field
		} else {
			field = prefix + "." + typeErr.Field
		}
		return errs.NewValidationError(field, fmt.Sprintf("must be %s", typeErr.Type))
	}
	return errs.NewValidationError(field, err.Error())
}

// Check validates a request that was built in code rather than classified from JSON.
func Check(req *types.DocumentRequest) error {
	if err := req.Validate(); err != nil {
		return &errs.UsageError{Message: err.Error()}
	}
	if req.Kind == types.KindProposal {
		if err := validateStruct("", req.Proposal); err != nil {
			return err
		}
	}
	if req.Agency != nil {
		if err := validateStruct("agency.", req.Agency); err != nil {
			return err
		}
	}
	return nil
}
