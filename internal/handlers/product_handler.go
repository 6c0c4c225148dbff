package handlers

import (
	"inventory/internal/services"
	"inventory/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	log     *logger.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log *logger.Logger) *ProductHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch products")
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err)
	}

	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch product")
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	payload, err := decodeBody(c)
	if err != nil {
		return badRequest(c, err)
	}

	product, err := h.service.CreateProduct(c.UserContext(), payload)
	if err != nil {
		return respondError(c, h.log, err, "Failed to create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies a partial update to a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err)
	}
	payload, err := decodeBody(c)
	if err != nil {
		return badRequest(c, err)
	}

	product, err := h.service.UpdateProduct(c.UserContext(), id, payload)
	if err != nil {
		return respondError(c, h.log, err, "Failed to update product")
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product and echoes the removed record.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err)
	}

	product, err := h.service.DeleteProduct(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err, "Failed to delete product")
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted",
		"product": product,
	})
}
