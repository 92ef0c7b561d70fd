package scenario

import (
	"bytes"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON key names instead of Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks doc against the scenario contract without materializing
// a value. A nil error means FromJSON(doc) would succeed.
func Validate(doc []byte) error {
	_, err := parse(doc)
	return err
}

// FromJSON decodes doc into the variant named by its scenarioType.
func FromJSON(doc []byte) (Scenario, error) {
	return parse(doc)
}

// ToJSON encodes s with its scenarioType followed by the variant fields.
func ToJSON(s Scenario) ([]byte, error) {
	if s == nil {
		return nil, errors.Wrap(ErrMissingRequiredField, "cannot encode a nil scenario")
	}
	return json.Marshal(s)
}

// Discriminator reads the scenario type of doc, failing the same way
// Validate does for the envelope checks. The variant fields are not checked.
func Discriminator(doc []byte) (Type, error) {
	trimmed := bytes.TrimSpace(doc)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", errors.Wrapf(ErrMissingRequiredField,
			"the required field(s) [%s] are not found in the empty JSON document", DiscriminatorField)
	}
	if !gjson.ValidBytes(trimmed) {
		return "", errors.Wrap(ErrMalformedDocument, "the document is not valid JSON")
	}
	root := gjson.ParseBytes(trimmed)
	if !root.IsObject() {
		return "", errors.Wrapf(ErrMalformedDocument, "expected a JSON object, got %s", root.Type)
	}

	tag := root.Get(DiscriminatorField)
	if !tag.Exists() || tag.Type == gjson.Null {
		return "", errors.Wrapf(ErrMissingRequiredField,
			"the required field `%s` is not found in the JSON document", DiscriminatorField)
	}
	if tag.Type != gjson.String {
		return "", errors.Wrapf(ErrMalformedDocument,
			"expected the field `%s` to be a string but got `%s`", DiscriminatorField, tag.Raw)
	}

	t := Type(tag.Str)
	if !t.Valid() {
		return "", unknownDiscriminator(tag.Str)
	}
	return t, nil
}

func parse(doc []byte) (Scenario, error) {
	t, err := Discriminator(doc)
	if err != nil {
		return nil, err
	}
	v := registry[t]

	root := gjson.ParseBytes(doc)
	var missing []string
	for _, key := range v.required {
		if f := root.Get(key); !f.Exists() || f.Type == gjson.Null {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, errors.Wrapf(ErrMissingRequiredField,
			"the required field(s) %v in %s are not found in the JSON document", missing, t)
	}

	return v.decode(exactFields(root, v.fields))
}

// exactFields rebuilds the object from the keys of fields that match
// exactly, so the case-insensitive decoder never sees look-alike keys such
// as "NBTRANSFERS" and the first of duplicate keys wins, as it does for
// the required-key check.
func exactFields(root gjson.Result, fields []string) []byte {
	out := []byte{'{'}
	for _, key := range fields {
		if key == DiscriminatorField {
			continue
		}
		f := root.Get(key)
		if !f.Exists() {
			continue
		}
		if len(out) > 1 {
			out = append(out, ',')
		}
		out = append(out, '"')
		out = append(out, key...)
		out = append(out, '"', ':')
		out = append(out, f.Raw...)
	}
	return append(out, '}')
}

func decodeAs[T Scenario](doc []byte) (Scenario, error) {
	var s T
	if err := json.Unmarshal(doc, &s); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "decoding %s", s.ScenarioType()), ErrMalformedDocument)
	}
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return nil, errors.Wrapf(ErrInvalidField,
				"the field `%s` fails the `%s` constraint with value `%v`", fe.Namespace(), constraint(fe), fe.Value())
		}
		return nil, errors.Wrapf(ErrInvalidField, "%s: %v", s.ScenarioType(), err)
	}
	return s, nil
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
