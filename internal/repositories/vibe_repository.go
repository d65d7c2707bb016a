package repositories

import (
	"fmt"

	"github.com/aurafeed/backend/internal/models"
	"gorm.io/gorm"
)

// VibeRepository defines the interface for vibe reaction data operations
type VibeRepository interface {
	CreateVibe(vibe *models.Vibe) error
	UpdateVibe(postID, profileID string, kind models.VibeKind) error
	DeleteVibe(postID, profileID string) error
	GetVibe(postID, profileID string) (*models.Vibe, error)
	ListByPostIDs(postIDs []string) ([]models.Vibe, error)
}

// PostgresVibeRepository implements VibeRepository for PostgreSQL
type PostgresVibeRepository struct {
	db *gorm.DB
}

// NewPostgresVibeRepository creates a new PostgresVibeRepository
func NewPostgresVibeRepository(db *gorm.DB) *PostgresVibeRepository {
	return &PostgresVibeRepository{db: db}
}

// CreateVibe creates a new vibe reaction in PostgreSQL
func (r *PostgresVibeRepository) CreateVibe(vibe *models.Vibe) error {
	return r.db.Create(vibe).Error
}

// UpdateVibe replaces the kind of an existing reaction in place
func (r *PostgresVibeRepository) UpdateVibe(postID, profileID string, kind models.VibeKind) error {
	res := r.db.Model(&models.Vibe{}).Where("post_id = ? AND profile_id = ?", postID, profileID).Update("vibe", kind)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("vibe not found")
	}
	return nil
}

// DeleteVibe deletes a vibe reaction by its natural key from PostgreSQL
func (r *PostgresVibeRepository) DeleteVibe(postID, profileID string) error {
	res := r.db.Where("post_id = ? AND profile_id = ?", postID, profileID).Delete(&models.Vibe{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("vibe not found")
	}
	return nil
}

// GetVibe retrieves a profile's reaction on a post, or nil when none exists
func (r *PostgresVibeRepository) GetVibe(postID, profileID string) (*models.Vibe, error) {
	var vibe models.Vibe
	err := r.db.Where("post_id = ? AND profile_id = ?", postID, profileID).First(&vibe).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &vibe, nil
}

// ListByPostIDs retrieves all vibe reactions for the given set of posts
func (r *PostgresVibeRepository) ListByPostIDs(postIDs []string) ([]models.Vibe, error) {
	vibes := []models.Vibe{}
	if len(postIDs) == 0 {
		return vibes, nil
	}
	if err := r.db.Where("post_id IN ?", postIDs).Find(&vibes).Error; err != nil {
		return nil, err
	}
	return vibes, nil
}
