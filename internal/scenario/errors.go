package scenario

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrMissingRequiredField: the document is null or lacks a required key.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrMalformedDocument: the document is not a JSON object, or a field has
	// the wrong JSON type.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrUnknownDiscriminator: scenarioType names no known variant.
	ErrUnknownDiscriminator = errors.New("unknown scenario type")

	// ErrInvalidField: a field is well typed but violates a value constraint.
	ErrInvalidField = errors.New("invalid field")
)

// Stable codes for the error kinds, as reported to API clients.
const (
	CodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	CodeMalformedDocument    = "MALFORMED_DOCUMENT"
	CodeUnknownScenarioType  = "UNKNOWN_SCENARIO_TYPE"
	CodeInvalidField         = "INVALID_FIELD"
)

// ErrorCode maps err to the code of its kind, or "" for foreign errors.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrMissingRequiredField):
		return CodeMissingRequiredField
	case errors.Is(err, ErrMalformedDocument):
		return CodeMalformedDocument
	case errors.Is(err, ErrUnknownDiscriminator):
		return CodeUnknownScenarioType
	case errors.Is(err, ErrInvalidField):
		return CodeInvalidField
	default:
		return ""
	}
}

func unknownDiscriminator(value string) error {
	return errors.Wrapf(ErrUnknownDiscriminator,
		"the value of the `%s` field `%s` does not match any known scenario", DiscriminatorField, value)
}
