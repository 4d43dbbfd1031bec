package server

import (
	"log/slog"

	"artfolio/internal/artapi"
	"artfolio/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetInspired handles GET /get_inspired. A catalog failure degrades to an
// empty list with a warning instead of an error status.
func (s *Server) GetInspired(c *fiber.Ctx) error {
	artworks, err := s.inspirationService.Fetch(c.UserContext())
	if err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "inspiration feed unavailable",
			slog.String("error", err.Error()))
		return c.JSON(fiber.Map{
			"artworks": []artapi.CatalogArtwork{},
			"warning":  "Failed to load inspirational art",
		})
	}

	return c.JSON(fiber.Map{
		"artworks": artworks,
	})
}
