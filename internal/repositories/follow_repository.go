package repositories

import (
	"fmt"

	"github.com/aurafeed/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	DeleteFollow(followerID, followingID string) error
	IsFollowing(followerID, followingID string) (bool, error)
	GetFollowers(profileID string) ([]models.Profile, error)
	GetFollowing(profileID string) ([]models.Profile, error)
	GetFollowingIDs(profileID string) ([]string, error)
	GetFollowersCount(profileID string) (int64, error)
	GetFollowingCount(profileID string) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) error {
	return r.db.Create(follow).Error
}

func (r *PostgresFollowRepository) DeleteFollow(followerID, followingID string) error {
	res := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("follow relationship not found")
	}
	return nil
}

func (r *PostgresFollowRepository) IsFollowing(followerID, followingID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", followerID, followingID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresFollowRepository) GetFollowers(profileID string) ([]models.Profile, error) {
	profiles := []models.Profile{}
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("follower_id").Where("following_id = ?", profileID),
	).Find(&profiles).Error
	return profiles, err
}

func (r *PostgresFollowRepository) GetFollowing(profileID string) ([]models.Profile, error) {
	profiles := []models.Profile{}
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("following_id").Where("follower_id = ?", profileID),
	).Find(&profiles).Error
	return profiles, err
}

func (r *PostgresFollowRepository) GetFollowingIDs(profileID string) ([]string, error) {
	ids := []string{}
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", profileID).Pluck("following_id", &ids).Error
	return ids, err
}

func (r *PostgresFollowRepository) GetFollowersCount(profileID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("following_id = ?", profileID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingCount(profileID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", profileID).Count(&count).Error
	return count, err
}
