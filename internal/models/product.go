package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a product document in the catalog.
// Optional fields are pointers so that an absent value is never stored or rendered.
type Product struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        *string            `json:"name,omitempty" bson:"name,omitempty" validate:"required,max=100"`
	Description *string            `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=500"`
	Price       *float64           `json:"price,omitempty" bson:"price,omitempty"`
	Category    *string            `json:"category,omitempty" bson:"category,omitempty"`
	ImageURL    *string            `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Stock       *int64             `json:"stock,omitempty" bson:"stock,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ProductFields is the write payload for a product. It has no identifier on purpose:
// the storage layer assigns it and it never changes.
type ProductFields struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	ImageURL    *string
	Stock       *int64
}

// NewProduct builds an unsaved product document from the given fields.
func NewProduct(fields ProductFields) Product {
	var p Product
	p.Apply(fields)
	return p
}

// Apply overwrites the fields present in f and leaves the others untouched.
func (p *Product) Apply(f ProductFields) {
	if f.Name != nil {
		p.Name = f.Name
	}
	if f.Description != nil {
		p.Description = f.Description
	}
	if f.Price != nil {
		p.Price = f.Price
	}
	if f.Category != nil {
		p.Category = f.Category
	}
	if f.ImageURL != nil {
		p.ImageURL = f.ImageURL
	}
	if f.Stock != nil {
		p.Stock = f.Stock
	}
}

// Present returns the Product struct field names that f sets, in declaration order.
func (f ProductFields) Present() []string {
	var names []string
	if f.Name != nil {
		names = append(names, "Name")
	}
	if f.Description != nil {
		names = append(names, "Description")
	}
	if f.Price != nil {
		names = append(names, "Price")
	}
	if f.Category != nil {
		names = append(names, "Category")
	}
	if f.ImageURL != nil {
		names = append(names, "ImageURL")
	}
	if f.Stock != nil {
		names = append(names, "Stock")
	}
	return names
}

// IsEmpty reports whether no field is set.
func (f ProductFields) IsEmpty() bool {
	return len(f.Present()) == 0
}
