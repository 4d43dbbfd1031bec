package models

import (
	"strings"
	"time"
)

// Artwork represents one uploaded or generated image together with the
// metadata derived from the external enrichment services. Price stays nil
// when the price service could not be reached or returned no prediction.
type Artwork struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"not null" json:"title"`
	Description     string    `gorm:"not null" json:"description"`
	ImageURL        string    `gorm:"not null" json:"image_url"`
	Price           *float64  `json:"price"`
	IsAuthenticated bool      `gorm:"default:false" json:"is_authenticated"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ImageFilename returns the bare filename referenced by ImageURL.
func (a *Artwork) ImageFilename() string {
	idx := strings.LastIndex(a.ImageURL, "/")
	if idx < 0 {
		return a.ImageURL
	}
	return a.ImageURL[idx+1:]
}
