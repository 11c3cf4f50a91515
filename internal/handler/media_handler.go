package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/orzutravel/api/internal/domain"
	"github.com/orzutravel/api/internal/service"
)

// MediaHandler handles admin media uploads
type MediaHandler struct {
	packageService *service.PackageService
	maxUploadMB    int64
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(packageService *service.PackageService, maxUploadMB int64) *MediaHandler {
	return &MediaHandler{
		packageService: packageService,
		maxUploadMB:    maxUploadMB,
	}
}

// UploadMedia handles POST /v1/admin/media
// Accepts one or more files in the multipart field "media" and relays them
// to the hosting provider. The response preserves the provider's ordering.
func (h *MediaHandler) UploadMedia(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid multipart form: " + err.Error(),
		})
	}

	headers := form.File["media"]
	if len(headers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "missing 'media' field in form data",
		})
	}

	maxBytes := h.maxUploadMB * 1024 * 1024
	files := make([]domain.MediaFile, 0, len(headers))
	for _, header := range headers {
		if header.Size > maxBytes {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   fmt.Sprintf("file size exceeds maximum of %dMB", h.maxUploadMB),
			})
		}
		file, err := readUpload(header)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "failed to read uploaded file",
			})
		}
		files = append(files, file)
	}

	items, err := h.packageService.UploadMedia(c.Context(), files)
	if err != nil {
		if errors.Is(err, domain.ErrUploadFailed) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "failed to upload media: " + err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    items,
	})
}

func readUpload(header *multipart.FileHeader) (domain.MediaFile, error) {
	handle, err := header.Open()
	if err != nil {
		return domain.MediaFile{}, err
	}
	defer handle.Close()

	data, err := io.ReadAll(handle)
	if err != nil {
		return domain.MediaFile{}, err
	}

	return domain.MediaFile{
		Name:        header.Filename,
		ContentType: uploadContentType(header),
		Data:        data,
	}, nil
}

// uploadContentType resolves the declared content type, falling back to the
// file extension when the browser sent none.
func uploadContentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".mp4", ".mov", ".webm", ".mkv":
		return "video/mp4"
	default:
		return "image/jpeg"
	}
}
