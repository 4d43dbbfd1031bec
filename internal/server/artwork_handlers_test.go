package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"artfolio/internal/config"
	"artfolio/internal/models"
	"artfolio/internal/service"
	"artfolio/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\nfakepixels")

// MockArtworkRepository is a mock of the ArtworkRepository interface
type MockArtworkRepository struct {
	mock.Mock
}

func (m *MockArtworkRepository) GetByID(ctx context.Context, id uint) (*models.Artwork, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artwork), args.Error(1)
}

func (m *MockArtworkRepository) ListByOwner(ctx context.Context, userID uint) ([]models.Artwork, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Artwork), args.Error(1)
}

func (m *MockArtworkRepository) Create(ctx context.Context, artwork *models.Artwork) error {
	args := m.Called(ctx, artwork)
	return args.Error(0)
}

func (m *MockArtworkRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type stubEnricher struct {
	price     float64
	priceErr  error
	authentic bool
	authErr   error
}

func (s *stubEnricher) PredictPrice(ctx context.Context, imageB64 string) (float64, error) {
	return s.price, s.priceErr
}

func (s *stubEnricher) VerifyAuthenticity(ctx context.Context, imageB64 string) (bool, error) {
	return s.authentic, s.authErr
}

type stubGenerator struct {
	content []byte
	err     error
}

func (s *stubGenerator) GenerateImage(ctx context.Context, prompt string, maxBytes int64) ([]byte, error) {
	return s.content, s.err
}

// asUser simulates the auth middleware for a fixed user ID.
func asUser(id uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", id)
		return c.Next()
	}
}

func newArtworkTestServer(t *testing.T, mockRepo *MockArtworkRepository, enricher service.Enricher, generator service.Generator) *Server {
	t.Helper()
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	s := &Server{
		config:      &config.Config{JWTSecret: "test_secret"},
		store:       store,
		artworkRepo: mockRepo,
	}
	s.artworkService = service.NewArtworkService(mockRepo, store, enricher, generator, 16*1024*1024)
	return s
}

func multipartUpload(t *testing.T, filename, title, description string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("title", title))
	require.NoError(t, writer.WriteField("description", description))
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestDashboardHandler(t *testing.T) {
	mockRepo := new(MockArtworkRepository)
	price := 120.0
	mockRepo.On("ListByOwner", mock.Anything, uint(1)).Return([]models.Artwork{
		{ID: 1, Title: "First", UserID: 1, Price: &price},
		{ID: 2, Title: "Second", UserID: 1},
	}, nil)

	s := newArtworkTestServer(t, mockRepo, &stubEnricher{}, &stubGenerator{})
	app := fiber.New()
	app.Get("/dashboard", asUser(1), s.Dashboard)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Artworks []models.Artwork `json:"artworks"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Artworks, 2)
	assert.Equal(t, "First", body.Artworks[0].Title)
}

func TestCreateArtworkHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockArtworkRepository)
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		s := newArtworkTestServer(t, mockRepo, &stubEnricher{price: 250.0, authentic: true}, &stubGenerator{})
		app := fiber.New()
		app.Post("/create_artwork", asUser(1), s.CreateArtwork)

		body, contentType := multipartUpload(t, "sunset.png", "Sunset", "Evening light", pngBytes)
		req := httptest.NewRequest(http.MethodPost, "/create_artwork", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var out struct {
			Artwork models.Artwork `json:"artwork"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "Sunset", out.Artwork.Title)
		require.NotNil(t, out.Artwork.Price)
		assert.Equal(t, 250.0, *out.Artwork.Price)
		assert.True(t, out.Artwork.IsAuthenticated)
	})

	t.Run("MissingFile", func(t *testing.T) {
		mockRepo := new(MockArtworkRepository)
		s := newArtworkTestServer(t, mockRepo, &stubEnricher{}, &stubGenerator{})
		app := fiber.New()
		app.Post("/create_artwork", asUser(1), s.CreateArtwork)

		req := httptest.NewRequest(http.MethodPost, "/create_artwork", bytes.NewReader(nil))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("BadExtension", func(t *testing.T) {
		mockRepo := new(MockArtworkRepository)
		s := newArtworkTestServer(t, mockRepo, &stubEnricher{}, &stubGenerator{})
		app := fiber.New()
		app.Post("/create_artwork", asUser(1), s.CreateArtwork)

		body, contentType := multipartUpload(t, "script.exe", "Nope", "", pngBytes)
		req := httptest.NewRequest(http.MethodPost, "/create_artwork", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestGenerateArtworkHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockArtworkRepository)
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		s := newArtworkTestServer(t, mockRepo, &stubEnricher{}, &stubGenerator{content: pngBytes})
		app := fiber.New()
		app.Post("/generate_artwork", asUser(1), s.GenerateArtwork)

		resp := postJSON(t, app, "/generate_artwork", map[string]string{"prompt": "a cat in a hat"})
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var out struct {
			Artwork models.Artwork `json:"artwork"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "AI Art: a cat in a hat", out.Artwork.Title)
		assert.Equal(t, "a cat in a hat", out.Artwork.Description)
	})

	t.Run("GeneratorDown", func(t *testing.T) {
		mockRepo := new(MockArtworkRepository)
		s := newArtworkTestServer(t, mockRepo, &stubEnricher{}, &stubGenerator{err: errors.New("generator down")})
		app := fiber.New()
		app.Post("/generate_artwork", asUser(1), s.GenerateArtwork)

		resp := postJSON(t, app, "/generate_artwork", map[string]string{"prompt": "a cat"})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})

	t.Run("EmptyPrompt", func(t *testing.T) {
		mockRepo := new(MockArtworkRepository)
		s := newArtworkTestServer(t, mockRepo, &stubEnricher{}, &stubGenerator{content: pngBytes})
		app := fiber.New()
		app.Post("/generate_artwork", asUser(1), s.GenerateArtwork)

		resp := postJSON(t, app, "/generate_artwork", map[string]string{"prompt": ""})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteArtworkHandler(t *testing.T) {
	stored := &models.Artwork{ID: 3, UserID: 1, ImageURL: "/uploads/images/art.png"}

	t.Run("OwnerSuccess", func(t *testing.T) {
		mockRepo := new(MockArtworkRepository)
		mockRepo.On("GetByID", mock.Anything, uint(3)).Return(stored, nil)
		mockRepo.On("Delete", mock.Anything, uint(3)).Return(nil)

		s := newArtworkTestServer(t, mockRepo, &stubEnricher{}, &stubGenerator{})
		app := fiber.New()
		app.Post("/delete_artwork/:id", asUser(1), s.DeleteArtwork)

		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/delete_artwork/3", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		mockRepo := new(MockArtworkRepository)
		mockRepo.On("GetByID", mock.Anything, uint(3)).Return(stored, nil)

		s := newArtworkTestServer(t, mockRepo, &stubEnricher{}, &stubGenerator{})
		app := fiber.New()
		app.Post("/delete_artwork/:id", asUser(2), s.DeleteArtwork)

		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/delete_artwork/3", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		mockRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockArtworkRepository)
		mockRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, models.NewNotFoundError("Artwork", 99))

		s := newArtworkTestServer(t, mockRepo, &stubEnricher{}, &stubGenerator{})
		app := fiber.New()
		app.Post("/delete_artwork/:id", asUser(1), s.DeleteArtwork)

		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/delete_artwork/99", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("InvalidID", func(t *testing.T) {
		mockRepo := new(MockArtworkRepository)
		s := newArtworkTestServer(t, mockRepo, &stubEnricher{}, &stubGenerator{})
		app := fiber.New()
		app.Post("/delete_artwork/:id", asUser(1), s.DeleteArtwork)

		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/delete_artwork/abc", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestServeUploadHandler(t *testing.T) {
	mockRepo := new(MockArtworkRepository)
	s := newArtworkTestServer(t, mockRepo, &stubEnricher{}, &stubGenerator{})

	_, err := s.store.Save("art.png", pngBytes)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/uploads/images/:filename", s.ServeUpload)

	t.Run("Found", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/uploads/images/art.png", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Missing", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/uploads/images/nope.png", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("TraversalRejected", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/uploads/images/..%2Fsecret.png", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.NotEqual(t, http.StatusOK, resp.StatusCode)
	})
}
