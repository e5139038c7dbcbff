package models

import "time"

// Product lifecycle event types.
const (
	ProductCreated = "product.created"
	ProductUpdated = "product.updated"
	ProductDeleted = "product.deleted"
)

// ProductEvent is published after a successful product write.
type ProductEvent struct {
	Type       string    `json:"type"`
	ProductID  string    `json:"productId"`
	Product    *Product  `json:"product,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewProductEvent creates an event of the given type for product p.
func NewProductEvent(eventType string, p *Product) ProductEvent {
	return ProductEvent{
		Type:       eventType,
		ProductID:  p.ID.Hex(),
		Product:    p,
		OccurredAt: time.Now().UTC(),
	}
}
