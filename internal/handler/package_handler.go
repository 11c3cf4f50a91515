package handler

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/orzutravel/api/internal/domain"
	"github.com/orzutravel/api/internal/service"
)

// PackageHandler handles admin HTTP requests for package management
type PackageHandler struct {
	packageService *service.PackageService
}

// NewPackageHandler creates a new package handler
func NewPackageHandler(packageService *service.PackageService) *PackageHandler {
	return &PackageHandler{packageService: packageService}
}

// ListPackages handles GET /v1/admin/packages
func (h *PackageHandler) ListPackages(c *fiber.Ctx) error {
	packages, err := h.packageService.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "failed to retrieve packages: " + err.Error(),
		})
	}
	if packages == nil {
		packages = []*domain.TravelPackage{}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    packages,
	})
}

// CreatePackage handles POST /v1/admin/packages
func (h *PackageHandler) CreatePackage(c *fiber.Ctx) error {
	var input domain.PackageInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}

	pkg, err := h.packageService.Create(c.Context(), input)
	if err != nil {
		return packageError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    pkg,
	})
}

// UpdatePackage handles PATCH /v1/admin/packages/:id
func (h *PackageHandler) UpdatePackage(c *fiber.Ctx) error {
	storeID := c.Params("id")

	var upd domain.PackageUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}

	pkg, err := h.packageService.Update(c.Context(), storeID, upd)
	if err != nil {
		return packageError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    pkg,
	})
}

// DeletePackage handles DELETE /v1/admin/packages/:id
func (h *PackageHandler) DeletePackage(c *fiber.Ctx) error {
	if err := h.packageService.Delete(c.Context(), c.Params("id")); err != nil {
		return packageError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}

// GetPackage handles GET /v1/admin/packages/:id
func (h *PackageHandler) GetPackage(c *fiber.Ctx) error {
	pkg, err := h.packageService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return packageError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    pkg,
	})
}

// packageError maps domain errors to HTTP responses.
func packageError(c *fiber.Ctx, err error) error {
	var validationErrs validation.Errors
	switch {
	case errors.As(err, &validationErrs):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "validation failed",
			"fields":  validationErrs,
		})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "package not found",
		})
	case errors.Is(err, domain.ErrUploadFailed), errors.Is(err, domain.ErrNotificationFailed):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
}
