package handler

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/orzutravel/api/internal/domain"
	"github.com/orzutravel/api/internal/service"
)

// InquiryHandler handles public booking and contact form submissions
type InquiryHandler struct {
	inquiryService *service.InquiryService
}

// NewInquiryHandler creates a new inquiry handler
func NewInquiryHandler(inquiryService *service.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiryService: inquiryService}
}

// SubmitBooking handles POST /v1/inquiries/booking
func (h *InquiryHandler) SubmitBooking(c *fiber.Ctx) error {
	var inquiry domain.BookingInquiry
	if err := c.BodyParser(&inquiry); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}
	if err := h.inquiryService.SubmitBooking(c.Context(), inquiry); err != nil {
		return inquiryError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}

// SubmitContact handles POST /v1/inquiries/contact
func (h *InquiryHandler) SubmitContact(c *fiber.Ctx) error {
	var inquiry domain.ContactInquiry
	if err := c.BodyParser(&inquiry); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}
	if err := h.inquiryService.SubmitContact(c.Context(), inquiry); err != nil {
		return inquiryError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}

func inquiryError(c *fiber.Ctx, err error) error {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "validation failed",
			"fields":  validationErrs,
		})
	}
	if errors.Is(err, domain.ErrNotificationFailed) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   "failed to deliver message, please try again",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}
