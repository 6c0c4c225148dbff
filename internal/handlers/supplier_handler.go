package handlers

import (
	"inventory/internal/services"
	"inventory/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// SupplierHandler handles HTTP requests for suppliers.
type SupplierHandler struct {
	service *services.SupplierService
	log     *logger.Logger
}

// NewSupplierHandler creates a new SupplierHandler.
func NewSupplierHandler(service *services.SupplierService, log *logger.Logger) *SupplierHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &SupplierHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the supplier routes with the Fiber app.
func (h *SupplierHandler) RegisterRoutes(router fiber.Router) {
	supplierRoutes := router.Group("/suppliers")
	supplierRoutes.Get("/", h.HandleGetSuppliers)
	supplierRoutes.Get("/:id", h.HandleGetSupplierByID)
	supplierRoutes.Post("/", h.HandleCreateSupplier)
	supplierRoutes.Put("/:id", h.HandleUpdateSupplier)
	supplierRoutes.Delete("/:id", h.HandleDeleteSupplier)
	supplierRoutes.Get("/:id/products", h.HandleGetSupplierProducts)
}

// HandleGetSuppliers retrieves all suppliers.
func (h *SupplierHandler) HandleGetSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.service.GetAllSuppliers(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch suppliers")
	}
	return c.JSON(suppliers)
}

// HandleGetSupplierByID returns the supplier with its product_count.
func (h *SupplierHandler) HandleGetSupplierByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err)
	}

	supplier, err := h.service.GetSupplierByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch supplier")
	}
	return c.JSON(supplier)
}

// HandleCreateSupplier creates a new supplier.
func (h *SupplierHandler) HandleCreateSupplier(c *fiber.Ctx) error {
	payload, err := decodeBody(c)
	if err != nil {
		return badRequest(c, err)
	}

	supplier, err := h.service.CreateSupplier(c.UserContext(), payload)
	if err != nil {
		return respondError(c, h.log, err, "Failed to create supplier")
	}
	return c.Status(fiber.StatusCreated).JSON(supplier)
}

// HandleUpdateSupplier applies a partial update to a supplier.
func (h *SupplierHandler) HandleUpdateSupplier(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err)
	}
	payload, err := decodeBody(c)
	if err != nil {
		return badRequest(c, err)
	}

	supplier, err := h.service.UpdateSupplier(c.UserContext(), id, payload)
	if err != nil {
		return respondError(c, h.log, err, "Failed to update supplier")
	}
	return c.JSON(supplier)
}

// HandleDeleteSupplier answers 409 while products still reference the
// supplier.
func (h *SupplierHandler) HandleDeleteSupplier(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err)
	}

	supplier, err := h.service.DeleteSupplier(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err, "Failed to delete supplier")
	}
	return c.JSON(fiber.Map{
		"message":  "Supplier deleted",
		"supplier": supplier,
	})
}

// HandleGetSupplierProducts lists the products referencing a supplier.
func (h *SupplierHandler) HandleGetSupplierProducts(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err)
	}

	products, err := h.service.GetSupplierProducts(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch supplier products")
	}
	return c.JSON(products)
}
