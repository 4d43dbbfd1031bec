// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"

	"artfolio/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers        int
	ArtworksPerUser int
	ShouldClean     bool
}

// DemoPassword is the plaintext password every seeded user gets.
const DemoPassword = "password123"

var artStyles = []string{
	"oil on canvas", "watercolor study", "charcoal sketch", "digital collage",
	"acrylic portrait", "ink wash landscape", "mixed media abstract",
	"gouache still life", "linocut print", "pastel seascape",
}

// Seed populates the database with demo users and artworks.
func Seed(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 5
	}
	if opts.ArtworksPerUser <= 0 {
		opts.ArtworksPerUser = 3
	}

	log.Printf("Seeding %d users with %d artworks each...", opts.NumUsers, opts.ArtworksPerUser)

	if opts.ShouldClean {
		if err := ClearAll(db); err != nil {
			log.Println("Warning: could not clear existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d demo users created", len(users))

	count, err := createArtworks(db, users, opts.ArtworksPerUser)
	if err != nil {
		return fmt.Errorf("failed to create artworks: %w", err)
	}
	log.Printf("✓ %d demo artworks created", count)

	return nil
}

// ClearAll removes all seeded rows. Artworks go first for the FK.
func ClearAll(db *gorm.DB) error {
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Artwork{}).Error; err != nil {
		return err
	}
	return db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{}).Error
}

func createUsers(db *gorm.DB, n int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{
			// Suffix keeps usernames unique across runs without cleaning.
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(10, 99)),
			Password: string(hashed),
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createArtworks(db *gorm.DB, users []models.User, perUser int) (int, error) {
	total := 0
	for _, user := range users {
		for i := 0; i < perUser; i++ {
			artwork := models.Artwork{
				Title:           fmt.Sprintf("%s %s", gofakeit.AdjectiveDescriptive(), gofakeit.NounConcrete()),
				Description:     fmt.Sprintf("A %s of %s", artStyles[rand.Intn(len(artStyles))], gofakeit.City()),
				ImageURL:        fmt.Sprintf("/uploads/images/seed_%d_%d.jpg", user.ID, i),
				IsAuthenticated: gofakeit.Bool(),
				UserID:          user.ID,
			}
			if rand.Float64() < 0.7 {
				price := gofakeit.Price(25, 5000)
				artwork.Price = &price
			}
			if err := db.Create(&artwork).Error; err != nil {
				return total, err
			}
			total++
		}
	}
	return total, nil
}
