package repository

import (
	"context"
	"errors"

	"artfolio/internal/models"

	"gorm.io/gorm"
)

// ArtworkRepository defines persistence operations for artworks.
type ArtworkRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Artwork, error)
	ListByOwner(ctx context.Context, userID uint) ([]models.Artwork, error)
	Create(ctx context.Context, artwork *models.Artwork) error
	Delete(ctx context.Context, id uint) error
}

type artworkRepository struct {
	db *gorm.DB
}

// NewArtworkRepository returns a new ArtworkRepository implementation.
func NewArtworkRepository(db *gorm.DB) ArtworkRepository {
	return &artworkRepository{db: db}
}

func (r *artworkRepository) GetByID(ctx context.Context, id uint) (*models.Artwork, error) {
	var artwork models.Artwork
	if err := r.db.WithContext(ctx).First(&artwork, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Artwork", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &artwork, nil
}

func (r *artworkRepository) ListByOwner(ctx context.Context, userID uint) ([]models.Artwork, error) {
	var artworks []models.Artwork
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&artworks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return artworks, nil
}

func (r *artworkRepository) Create(ctx context.Context, artwork *models.Artwork) error {
	if err := r.db.WithContext(ctx).Create(artwork).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *artworkRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Artwork{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
