package repositories

import (
	"fmt"

	"github.com/aurafeed/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(postID, profileID string) error
	HasLiked(postID, profileID string) (bool, error)
	ListByPostIDs(postIDs []string) ([]models.Like, error)
	ListPostIDsByProfile(profileID string) ([]string, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike creates a new like in PostgreSQL
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

// DeleteLike deletes a like by its natural key from PostgreSQL
func (r *PostgresLikeRepository) DeleteLike(postID, profileID string) error {
	res := r.db.Where("post_id = ? AND profile_id = ?", postID, profileID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("like not found")
	}
	return nil
}

// HasLiked checks if a profile has liked a specific post
func (r *PostgresLikeRepository) HasLiked(postID, profileID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_id = ? AND profile_id = ?", postID, profileID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByPostIDs retrieves all likes for the given set of posts
func (r *PostgresLikeRepository) ListByPostIDs(postIDs []string) ([]models.Like, error) {
	likes := []models.Like{}
	if len(postIDs) == 0 {
		return likes, nil
	}
	if err := r.db.Where("post_id IN ?", postIDs).Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}

// ListPostIDsByProfile retrieves the IDs of every post a profile has liked
func (r *PostgresLikeRepository) ListPostIDsByProfile(profileID string) ([]string, error) {
	ids := []string{}
	err := r.db.Model(&models.Like{}).Where("profile_id = ?", profileID).Pluck("post_id", &ids).Error
	return ids, err
}
