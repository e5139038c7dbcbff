package repositories

import (
	"errors"
	"fmt"

	"catalog/internal/models"

	"github.com/go-playground/validator/v10"
)

// ProductSchema enforces the product document rules on the write path.
type ProductSchema struct {
	validate *validator.Validate
}

// NewProductSchema creates a ProductSchema.
func NewProductSchema() *ProductSchema {
	return &ProductSchema{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// ValidateNew checks a complete document before insertion.
func (s *ProductSchema) ValidateNew(p *models.Product) error {
	return s.translate(s.validate.Struct(p))
}

// ValidateUpdate checks only the fields an update is about to write.
func (s *ProductSchema) ValidateUpdate(fields models.ProductFields) error {
	present := fields.Present()
	if len(present) == 0 {
		return nil
	}
	p := models.NewProduct(fields)
	return s.translate(s.validate.StructPartial(&p, present...))
}

func (s *ProductSchema) translate(err error) error {
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validating product: %w", err)
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, fieldMessage(e))
	}
	return &ValidationError{Messages: messages}
}

func fieldMessage(e validator.FieldError) string {
	switch e.Field() + "." + e.Tag() {
	case "Name.required":
		return "Please add a product name"
	case "Name.max":
		return fmt.Sprintf("Name cannot be more than %s characters", e.Param())
	case "Description.max":
		return fmt.Sprintf("Description cannot be more than %s characters", e.Param())
	}
	return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
}
