package handlers

import (
	"errors"
	"log"

	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes under router.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Post("/", h.HandleCreateProduct)

	validID := middleware.ValidateObjectID("id")
	productRoutes.Get("/:id", validID, h.HandleGetProduct)
	productRoutes.Put("/:id", validID, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", validID, h.HandleDeleteProduct)
}

// HandleGetProducts returns every product with its count.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return serverError(c, "fetching products", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return respondList(c, products, len(products))
}

// HandleGetProduct returns a single product.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id := middleware.ProductID(c)

	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return respondError(c, fiber.StatusNotFound, msgProductNotFound)
		}
		return serverError(c, "fetching product", err)
	}
	return respondData(c, fiber.StatusOK, product)
}

// HandleCreateProduct creates a product from the request body.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	product, err := h.service.CreateProduct(c.UserContext(), c.Body())
	if err != nil {
		if handled, status, message := writeError(err); handled {
			return respondError(c, status, message)
		}
		return serverError(c, "creating product", err)
	}
	return respondData(c, fiber.StatusCreated, product)
}

// HandleUpdateProduct overwrites the fields present in the request body.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id := middleware.ProductID(c)

	product, err := h.service.UpdateProduct(c.UserContext(), id, c.Body())
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return respondError(c, fiber.StatusNotFound, msgProductNotFound)
		}
		if handled, status, message := writeError(err); handled {
			return respondError(c, status, message)
		}
		return serverError(c, "updating product", err)
	}
	return respondData(c, fiber.StatusOK, product)
}

// HandleDeleteProduct removes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := middleware.ProductID(c)

	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return respondError(c, fiber.StatusNotFound, msgProductNotFound)
		}
		return serverError(c, "deleting product", err)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{})
}

// writeError maps input and schema errors raised on create/update to a 400 response.
func writeError(err error) (bool, int, interface{}) {
	var numErr *validation.NumericFieldError
	var schemaErr *repositories.ValidationError
	switch {
	case errors.As(err, &numErr):
		return true, fiber.StatusBadRequest, numErr.Message()
	case errors.As(err, &schemaErr):
		return true, fiber.StatusBadRequest, schemaErr.Messages
	case errors.Is(err, validation.ErrMalformedBody):
		return true, fiber.StatusBadRequest, msgInvalidBody
	}
	return false, 0, nil
}

func serverError(c *fiber.Ctx, action string, err error) error {
	logError(c, "Error "+action, err)
	return respondError(c, fiber.StatusInternalServerError, msgServerError)
}

func logError(c *fiber.Ctx, prefix string, err error) {
	log.Printf("%s [request %v]: %v", prefix, c.Locals("requestid"), err)
}
