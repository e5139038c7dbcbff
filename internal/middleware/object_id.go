package middleware

import (
	"catalog/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductIDKey is the c.Locals key holding the parsed product identifier.
const ProductIDKey = "productID"

// InvalidProductIDMessage is the error reported for a malformed identifier.
const InvalidProductIDMessage = "Invalid product ID format"

// ValidateObjectID is a Fiber middleware that rejects requests whose route
// parameter is not a valid ObjectID before any handler or storage call runs.
func ValidateObjectID(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ValidateIdentifier(c.Params(param))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   InvalidProductIDMessage,
			})
		}

		c.Locals(ProductIDKey, id)
		return c.Next()
	}
}

// ProductID returns the identifier stored by ValidateObjectID, or
// primitive.NilObjectID when the route is not guarded by it.
func ProductID(c *fiber.Ctx) primitive.ObjectID {
	id, _ := c.Locals(ProductIDKey).(primitive.ObjectID)
	return id
}
