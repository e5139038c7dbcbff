package validation_test

import (
	"testing"

	"catalog/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateIdentifier(t *testing.T) {
	id, err := validation.ValidateIdentifier("65a1f0c2e4b0a1b2c3d4e5f6")
	require.NoError(t, err)
	assert.Equal(t, "65a1f0c2e4b0a1b2c3d4e5f6", id.Hex())

	for _, raw := range []string{
		"",
		"123",
		"not-an-object-id",
		"65a1f0c2e4b0a1b2c3d4e5f",   // 23 chars
		"65a1f0c2e4b0a1b2c3d4e5f6a", // 25 chars
		"zza1f0c2e4b0a1b2c3d4e5f6",
		"abcdefghijkl", // 12 bytes, not hex
	} {
		_, err := validation.ValidateIdentifier(raw)
		assert.ErrorIs(t, err, validation.ErrInvalidIdentifier, "raw=%q", raw)
	}
}

func TestCoerceProductFields_CompleteRecord(t *testing.T) {
	fields, err := validation.CoerceProductFields([]byte(`{
		"name": "Laptop",
		"description": "High performance laptop",
		"price": 1200.5,
		"category": "computers",
		"imageUrl": "https://img.example.com/laptop.png",
		"stock": 10
	}`))
	require.NoError(t, err)

	require.NotNil(t, fields.Name)
	assert.Equal(t, "Laptop", *fields.Name)
	assert.Equal(t, "High performance laptop", *fields.Description)
	assert.Equal(t, 1200.5, *fields.Price)
	assert.Equal(t, "computers", *fields.Category)
	assert.Equal(t, "https://img.example.com/laptop.png", *fields.ImageURL)
	assert.Equal(t, int64(10), *fields.Stock)
}

func TestCoerceProductFields_AbsentFieldsAreOmitted(t *testing.T) {
	fields, err := validation.CoerceProductFields([]byte(`{"name": "Mouse"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Name"}, fields.Present())
}

func TestCoerceProductFields_EmptyBody(t *testing.T) {
	for _, body := range []string{"", "   ", "{}"} {
		fields, err := validation.CoerceProductFields([]byte(body))
		require.NoError(t, err)
		assert.True(t, fields.IsEmpty())
	}
}

func TestCoerceProductFields_MalformedBody(t *testing.T) {
	for _, body := range []string{`{"name":`, `[1,2]`, `"text"`, `null`, `42`} {
		_, err := validation.CoerceProductFields([]byte(body))
		assert.ErrorIs(t, err, validation.ErrMalformedBody, "body=%s", body)
	}
}

func TestCoerceProductFields_TextPolicy(t *testing.T) {
	tests := []struct {
		name string
		body string
		want *string
	}{
		{"empty string is absent", `{"name": ""}`, nil},
		{"whitespace is absent", `{"name": "   "}`, nil},
		{"null is absent", `{"name": null}`, nil},
		{"number is ignored", `{"name": 42}`, nil},
		{"object is ignored", `{"name": {"first": "x"}}`, nil},
		{"value is trimmed", `{"name": "  Keyboard "}`, strPtr("Keyboard")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := validation.CoerceProductFields([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, fields.Name)
		})
	}
}

func TestCoerceProductFields_NumericPolicy(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantPrice *float64
		wantStock *int64
	}{
		{"zero is present", `{"price": 0, "stock": 0}`, floatPtr(0), intPtr(0)},
		{"numeric strings are parsed", `{"price": "19.99", "stock": " 7 "}`, floatPtr(19.99), intPtr(7)},
		{"null is absent", `{"price": null, "stock": null}`, nil, nil},
		{"negative values are accepted", `{"price": -5.5, "stock": -3}`, floatPtr(-5.5), intPtr(-3)},
		{"integral float stock", `{"stock": 4.0}`, nil, intPtr(4)},
		{"exponent notation", `{"price": 1e3, "stock": "2E2"}`, floatPtr(1000), intPtr(200)},
		{"leading sign and bare fraction", `{"price": "+.5", "stock": "+5"}`, floatPtr(0.5), intPtr(5)},
		{"large stock keeps every digit", `{"stock": 9007199254740993}`, nil, intPtr(9007199254740993)},
		{"int64 bounds", `{"stock": "-9223372036854775808"}`, nil, intPtr(-9223372036854775808)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := validation.CoerceProductFields([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantPrice, fields.Price)
			assert.Equal(t, tt.wantStock, fields.Stock)
		})
	}
}

func TestCoerceProductFields_InvalidNumbers(t *testing.T) {
	tests := []struct {
		body    string
		field   string
		message string
	}{
		{`{"price": "abc"}`, "price", "Price must be a valid number"},
		{`{"price": ""}`, "price", "Price must be a valid number"},
		{`{"price": true}`, "price", "Price must be a valid number"},
		{`{"price": [1]}`, "price", "Price must be a valid number"},
		{`{"price": "NaN"}`, "price", "Price must be a valid number"},
		{`{"price": "Infinity"}`, "price", "Price must be a valid number"},
		{`{"price": 1e400}`, "price", "Price must be a valid number"},
		{`{"stock": "ten"}`, "stock", "Stock must be a valid number"},
		{`{"stock": 2.5}`, "stock", "Stock must be a valid number"},
		{`{"stock": 1e19}`, "stock", "Stock must be a valid number"},
		{`{"price": "abc", "stock": "ten"}`, "price", "Price must be a valid number"},
		{`{"price": "1_0"}`, "price", "Price must be a valid number"},
		{`{"price": "0x1p4"}`, "price", "Price must be a valid number"},
		{`{"price": "0x10"}`, "price", "Price must be a valid number"},
		{`{"price": "0b101"}`, "price", "Price must be a valid number"},
		{`{"price": "0o17"}`, "price", "Price must be a valid number"},
		{`{"price": "1e"}`, "price", "Price must be a valid number"},
		{`{"stock": "1_000"}`, "stock", "Stock must be a valid number"},
		{`{"stock": "0x10"}`, "stock", "Stock must be a valid number"},
		{`{"stock": 9223372036854775808}`, "stock", "Stock must be a valid number"},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			fields, err := validation.CoerceProductFields([]byte(tt.body))
			var numErr *validation.NumericFieldError
			require.ErrorAs(t, err, &numErr)
			assert.Equal(t, tt.field, numErr.Field)
			assert.Equal(t, tt.message, numErr.Message())
			assert.True(t, fields.IsEmpty())
		})
	}
}

func TestCoerceProductFields_UnknownFieldsIgnored(t *testing.T) {
	fields, err := validation.CoerceProductFields([]byte(`{"_id": "65a1f0c2e4b0a1b2c3d4e5f6", "sku": "X1", "name": "Cable"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Name"}, fields.Present())
}

func strPtr(v string) *string    { return &v }
func floatPtr(v float64) *float64 { return &v }
func intPtr(v int64) *int64       { return &v }
