// Package validation turns untrusted request input into typed product data.
package validation

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidIdentifier is returned for identifiers that are not a 24-character hex ObjectID.
var ErrInvalidIdentifier = errors.New("invalid product id format")

// ValidateIdentifier parses raw as a product identifier.
func ValidateIdentifier(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidIdentifier
	}
	return id, nil
}
