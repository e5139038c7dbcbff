package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"catalog/internal/models"
)

// ErrMalformedBody is returned when the request body is not a JSON object.
var ErrMalformedBody = errors.New("invalid request body")

// NumericFieldError reports a numeric field that could not be parsed.
type NumericFieldError struct {
	Field string
}

func (e *NumericFieldError) Error() string {
	return fmt.Sprintf("%s must be a valid number", e.Field)
}

// Message is the client-facing form of the error, e.g. "Price must be a valid number".
func (e *NumericFieldError) Message() string {
	if e.Field == "" {
		return "Value must be a valid number"
	}
	return strings.ToUpper(e.Field[:1]) + e.Field[1:] + " must be a valid number"
}

type fieldState int

const (
	fieldAbsent fieldState = iota
	fieldEmpty
	fieldValid
	fieldInvalid
)

// int64 bounds as float64; the upper one is exclusive.
const (
	minStock = -9223372036854775808.0
	maxStock = 9223372036854775808.0
)

// decimalNumber is plain decimal notation: no digit separators, no base prefixes
// and no hex floats.
var decimalNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// CoerceProductFields extracts the product fields from a JSON request body.
//
// Text fields (name, description, category, imageUrl) are kept only when they are
// JSON strings that are non-empty after trimming; empty strings, null and non-string
// values count as absent. Numeric fields (price, stock) accept JSON numbers and numeric
// strings in plain decimal notation, including 0 and negative values; null counts
// as absent and anything else is a *NumericFieldError. Stock must also be integral.
// Unknown keys are ignored.
func CoerceProductFields(body []byte) (models.ProductFields, error) {
	var fields models.ProductFields

	raw, err := decodeObject(body)
	if err != nil {
		return fields, err
	}

	fields.Name = text(raw, "name")
	fields.Description = text(raw, "description")

	price, state := number(raw, "price")
	switch state {
	case fieldInvalid:
		return models.ProductFields{}, &NumericFieldError{Field: "price"}
	case fieldValid:
		fields.Price = &price
	}

	fields.Category = text(raw, "category")
	fields.ImageURL = text(raw, "imageUrl")

	stock, state := integer(raw, "stock")
	switch state {
	case fieldInvalid:
		return models.ProductFields{}, &NumericFieldError{Field: "stock"}
	case fieldValid:
		fields.Stock = &stock
	}

	return fields, nil
}

func decodeObject(body []byte) (map[string]json.RawMessage, error) {
	raw := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(body)) == 0 {
		return raw, nil
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, ErrMalformedBody
	}
	// a literal null decodes into a nil map without error
	if raw == nil {
		return nil, ErrMalformedBody
	}
	return raw, nil
}

func text(raw map[string]json.RawMessage, key string) *string {
	v, state := textField(raw, key)
	if state != fieldValid {
		return nil
	}
	return &v
}

func textField(raw map[string]json.RawMessage, key string) (string, fieldState) {
	value, ok := raw[key]
	if !ok || isNull(value) {
		return "", fieldAbsent
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return "", fieldInvalid
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fieldEmpty
	}
	return s, fieldValid
}

func number(raw map[string]json.RawMessage, key string) (float64, fieldState) {
	s, state := numericText(raw, key)
	if state != fieldValid {
		return 0, state
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fieldInvalid
	}
	return n, fieldValid
}

// integer parses whole numbers exactly and accepts fractional notation only when
// it denotes an integer within int64 range, e.g. 4.0 or 1e3.
func integer(raw map[string]json.RawMessage, key string) (int64, fieldState) {
	s, state := numericText(raw, key)
	if state != fieldValid {
		return 0, state
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, fieldValid
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f < minStock || f >= maxStock {
		return 0, fieldInvalid
	}
	return int64(f), fieldValid
}

// numericText returns the decimal text of a JSON number or numeric string.
func numericText(raw map[string]json.RawMessage, key string) (string, fieldState) {
	value, ok := raw[key]
	if !ok || isNull(value) {
		return "", fieldAbsent
	}

	dec := json.NewDecoder(bytes.NewReader(value))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", fieldInvalid
	}

	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	default:
		return "", fieldInvalid
	}
	if !decimalNumber.MatchString(s) {
		return "", fieldInvalid
	}
	return s, fieldValid
}

func isNull(value json.RawMessage) bool {
	return string(bytes.TrimSpace(value)) == "null"
}
