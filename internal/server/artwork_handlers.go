package server

import (
	"io"
	"os"
	"strconv"

	"artfolio/internal/models"
	"artfolio/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Dashboard handles GET /dashboard
func (s *Server) Dashboard(c *fiber.Ctx) error {
	artworks, err := s.artworkService.ListByOwner(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(fiber.Map{
		"artworks": artworks,
	})
}

// CreateArtworkForm handles GET /create_artwork
func (s *Server) CreateArtworkForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "POST multipart form with title, description, and image",
	})
}

// CreateArtwork handles POST /create_artwork
func (s *Server) CreateArtwork(c *fiber.Ctx) error {
	title := c.FormValue("title")
	description := c.FormValue("description")

	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}

	artwork, err := s.artworkService.CreateFromUpload(c.UserContext(), service.UploadArtworkInput{
		UserID:      currentUserID(c),
		Title:       title,
		Description: description,
		Filename:    file.Filename,
		Content:     content,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"artwork": artwork,
	})
}

// GenerateArtworkForm handles GET /generate_artwork
func (s *Server) GenerateArtworkForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "POST a prompt to generate an artwork",
	})
}

// GenerateArtwork handles POST /generate_artwork
func (s *Server) GenerateArtwork(c *fiber.Ctx) error {
	var req struct {
		Prompt string `json:"prompt" form:"prompt"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	artwork, err := s.artworkService.CreateFromPrompt(c.UserContext(), currentUserID(c), req.Prompt)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"artwork": artwork,
	})
}

// DeleteArtwork handles POST /delete_artwork/:id
func (s *Server) DeleteArtwork(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid artwork ID"))
	}

	if err := s.artworkService.Delete(c.UserContext(), uint(id), currentUserID(c)); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"message": "Artwork deleted successfully",
	})
}

// ServeUpload handles GET /uploads/images/:filename
func (s *Server) ServeUpload(c *fiber.Ctx) error {
	filename := c.Params("filename")
	path, err := s.store.Path(filename)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid filename"))
	}
	if _, err := os.Stat(path); err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Image", filename))
	}
	return c.SendFile(path)
}
