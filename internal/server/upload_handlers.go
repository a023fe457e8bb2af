package server

import (
	"io"

	"zephyr/internal/models"
	"zephyr/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadProfilePicture godoc
// @Summary Upload a profile picture
// @Tags upload
// @Accept mpfd
// @Produce json
// @Param file formData file true "Image (.jpg, .jpeg, .png, .gif, .webp; max 5MB)"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /upload/profile-picture [post]
func (s *Server) UploadProfilePicture(c *fiber.Ctx) error {
	return s.handleUpload(c, service.UploadKindProfile)
}

// UploadPostImage godoc
// @Summary Upload a post image
// @Tags upload
// @Accept mpfd
// @Produce json
// @Param file formData file true "Image (.jpg, .jpeg, .png, .gif, .webp; max 5MB)"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /upload/post-image [post]
func (s *Server) UploadPostImage(c *fiber.Ctx) error {
	return s.handleUpload(c, service.UploadKindPost)
}

func (s *Server) handleUpload(c *fiber.Ctx, kind string) error {
	header, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("No file provided"))
	}

	f, err := header.Open()
	if err != nil {
		return respondServiceError(c, models.NewInternalError(err))
	}
	defer f.Close()

	// Read one byte past the limit so oversized files are still rejected by size.
	content, err := io.ReadAll(io.LimitReader(f, service.MaxUploadSize+1))
	if err != nil {
		return respondServiceError(c, models.NewInternalError(err))
	}

	name, err := s.uploadService.Store(c.UserContext(), content, header.Filename, kind)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(models.UploadResponse{
		Filename: name,
		FileURL:  s.uploadService.URL(name, kind),
	})
}
