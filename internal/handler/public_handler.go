package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/orzutravel/api/internal/domain"
	"github.com/orzutravel/api/internal/service"
)

const publicPerPage = 6

// PublicHandler serves the read-only endpoints the site renders from.
type PublicHandler struct {
	packageService *service.PackageService
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(packageService *service.PackageService) *PublicHandler {
	return &PublicHandler{packageService: packageService}
}

// publicPackage is the localized view of a package: one language, with the
// description already sanitized for direct innerHTML rendering.
type publicPackage struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Price     float64            `json:"price"`
	Text      string             `json:"text"`
	Media     []domain.MediaItem `json:"media"`
	CreatedAt int64              `json:"createdAt"`
}

func toPublicPackage(pkg *domain.TravelPackage, locale domain.Locale) publicPackage {
	media := pkg.Media
	if media == nil {
		media = []domain.MediaItem{}
	}
	return publicPackage{
		ID:        pkg.ID,
		Name:      pkg.Name.Get(locale),
		Price:     pkg.Price,
		Text:      service.RenderSafeHTML(pkg.Text.Get(locale)),
		Media:     media,
		CreatedAt: pkg.CreatedAt,
	}
}

// ListPackages handles GET /v1/packages?page=N&locale=uz|ru
// The catalog is shown oldest-first, six per page. Out-of-range pages are
// clamped into the valid range rather than rejected.
func (h *PublicHandler) ListPackages(c *fiber.Ctx) error {
	locale := domain.ParseLocale(c.Query("locale"))

	packages, err := h.packageService.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "failed to retrieve packages",
		})
	}

	// Stored order is newest-first; the site presents oldest-first.
	reversed := make([]*domain.TravelPackage, len(packages))
	for i, pkg := range packages {
		reversed[len(packages)-1-i] = pkg
	}

	total := len(reversed)
	totalPages := (total + publicPerPage - 1) / publicPerPage
	if totalPages == 0 {
		totalPages = 1
	}

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * publicPerPage
	end := start + publicPerPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := make([]publicPackage, 0, end-start)
	for _, pkg := range reversed[start:end] {
		items = append(items, toPublicPackage(pkg, locale))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    items,
		"pagination": fiber.Map{
			"page":        page,
			"per_page":    publicPerPage,
			"total":       total,
			"total_pages": totalPages,
		},
	})
}

// GetPackage handles GET /v1/packages/:id?locale=uz|ru
// The id is the public application id, not the store id.
func (h *PublicHandler) GetPackage(c *fiber.Ctx) error {
	locale := domain.ParseLocale(c.Query("locale"))

	pkg, err := h.packageService.GetByAppID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   "package_not_found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "failed to retrieve package",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    toPublicPackage(pkg, locale),
	})
}
