package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"artfolio/internal/middleware"
	"artfolio/internal/models"
	"artfolio/internal/repository"
	"artfolio/internal/storage"
	"artfolio/internal/validation"
)

// Enricher is the slice of the external API client the ingestion flow needs
// for best-effort price and authenticity enrichment.
type Enricher interface {
	PredictPrice(ctx context.Context, imageB64 string) (float64, error)
	VerifyAuthenticity(ctx context.Context, imageB64 string) (bool, error)
}

// Generator produces image bytes from a free-text prompt.
type Generator interface {
	GenerateImage(ctx context.Context, prompt string, maxBytes int64) ([]byte, error)
}

// UploadArtworkInput carries one uploaded image and its metadata.
type UploadArtworkInput struct {
	UserID      uint
	Title       string
	Description string
	Filename    string
	Content     []byte
}

// ArtworkService implements the ingestion flow and artwork management.
type ArtworkService struct {
	artworkRepo    repository.ArtworkRepository
	store          *storage.LocalStore
	enricher       Enricher
	generator      Generator
	maxUploadBytes int64
}

func NewArtworkService(
	artworkRepo repository.ArtworkRepository,
	store *storage.LocalStore,
	enricher Enricher,
	generator Generator,
	maxUploadBytes int64,
) *ArtworkService {
	return &ArtworkService{
		artworkRepo:    artworkRepo,
		store:          store,
		enricher:       enricher,
		generator:      generator,
		maxUploadBytes: maxUploadBytes,
	}
}

// CreateFromUpload runs the upload variant of the ingestion flow: validate,
// persist the bytes, enrich via the external services, then insert the record.
func (s *ArtworkService) CreateFromUpload(ctx context.Context, in UploadArtworkInput) (*models.Artwork, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadBytes/(1024*1024)))
	}
	if err := validation.ValidateImageExtension(in.Filename); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	filename := s.store.UploadFilename(in.Filename)
	return s.ingest(ctx, in.UserID, in.Title, in.Description, filename, in.Content)
}

// CreateFromPrompt runs the generation variant: fetch bytes from the
// generator service, then ingest them like an upload. Unlike the enrichment
// calls, a generator failure is surfaced to the caller.
func (s *ArtworkService) CreateFromPrompt(ctx context.Context, userID uint, prompt string) (*models.Artwork, error) {
	if userID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, models.NewValidationError("Prompt is required")
	}

	content, err := s.generator.GenerateImage(ctx, prompt, s.maxUploadBytes)
	if err != nil {
		return nil, models.NewExternalServiceError("generator", err)
	}

	ext, err := sniffImageExtension(content)
	if err != nil {
		return nil, models.NewExternalServiceError("generator", err)
	}

	title := "AI Art: " + truncateRunes(prompt, 50)
	filename := s.store.GeneratedFilename(userID, ext)
	return s.ingest(ctx, userID, title, prompt, filename, content)
}

// ingest is the shared tail of both variants: one file write, up to two
// outbound calls, one insert. The enrichment calls are best-effort; the
// record is persisted regardless of their outcome. A failed insert removes
// the just-written file so no orphan is left behind.
func (s *ArtworkService) ingest(ctx context.Context, userID uint, title, description, filename string, content []byte) (*models.Artwork, error) {
	if _, err := s.store.Save(filename, content); err != nil {
		return nil, models.NewInternalError(err)
	}

	stored, err := s.store.Read(filename)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	imageB64 := base64.StdEncoding.EncodeToString(stored)

	artwork := &models.Artwork{
		Title:       title,
		Description: description,
		ImageURL:    "/uploads/images/" + filename,
		UserID:      userID,
	}

	if price, err := s.enricher.PredictPrice(ctx, imageB64); err != nil {
		middleware.Logger.WarnContext(ctx, "price prediction unavailable",
			slog.String("error", err.Error()))
	} else {
		artwork.Price = &price
	}

	if authentic, err := s.enricher.VerifyAuthenticity(ctx, imageB64); err != nil {
		middleware.Logger.WarnContext(ctx, "authenticity check unavailable",
			slog.String("error", err.Error()))
	} else {
		artwork.IsAuthenticated = authentic
	}

	if err := s.artworkRepo.Create(ctx, artwork); err != nil {
		if removeErr := s.store.Remove(filename); removeErr != nil {
			middleware.Logger.WarnContext(ctx, "failed to clean up image after insert failure",
				slog.String("filename", filename),
				slog.String("error", removeErr.Error()))
		}
		return nil, err
	}

	return artwork, nil
}

// ListByOwner returns the user's artworks in insertion order.
func (s *ArtworkService) ListByOwner(ctx context.Context, userID uint) ([]models.Artwork, error) {
	return s.artworkRepo.ListByOwner(ctx, userID)
}

// Get returns a single artwork or a not-found error.
func (s *ArtworkService) Get(ctx context.Context, artworkID uint) (*models.Artwork, error) {
	return s.artworkRepo.GetByID(ctx, artworkID)
}

// Delete removes an artwork owned by the requesting user. The backing file
// is removed best-effort; its absence or a removal failure never blocks the
// row delete.
func (s *ArtworkService) Delete(ctx context.Context, artworkID, requestingUserID uint) error {
	artwork, err := s.artworkRepo.GetByID(ctx, artworkID)
	if err != nil {
		return err
	}
	if artwork.UserID != requestingUserID {
		return models.NewPermissionError("You do not have permission to delete this artwork")
	}

	if err := s.store.Remove(artwork.ImageFilename()); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to remove artwork image",
			slog.String("filename", artwork.ImageFilename()),
			slog.String("error", err.Error()))
	}

	return s.artworkRepo.Delete(ctx, artworkID)
}

// sniffImageExtension maps the detected content type of generated bytes onto
// an allowed extension. The generator does not hand us a filename, so the
// type check happens on the bytes themselves.
func sniffImageExtension(content []byte) (string, error) {
	detected := http.DetectContentType(content)
	mediaType, _, err := mime.ParseMediaType(detected)
	if err != nil {
		mediaType = detected
	}
	switch mediaType {
	case "image/jpeg":
		return "jpg", nil
	case "image/png":
		return "png", nil
	case "image/gif":
		return "gif", nil
	default:
		return "", fmt.Errorf("generated content is not an allowed image type (got %s)", mediaType)
	}
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
