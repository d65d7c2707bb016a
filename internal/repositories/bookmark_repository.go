package repositories

import (
	"fmt"

	"github.com/aurafeed/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookmarkRepository defines the interface for bookmark data operations
type BookmarkRepository interface {
	UpsertBookmark(bookmark *models.Bookmark) error
	UpsertBookmarks(bookmarks []models.Bookmark) error
	DeleteBookmark(profileID, postID string) error
	IsBookmarked(profileID, postID string) (bool, error)
	ListByProfile(profileID string) ([]models.Bookmark, error)
	ClearByProfile(profileID string) error
}

// PostgresBookmarkRepository implements BookmarkRepository
type PostgresBookmarkRepository struct {
	db *gorm.DB
}

// NewPostgresBookmarkRepository creates a new PostgresBookmarkRepository
func NewPostgresBookmarkRepository(db *gorm.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

// UpsertBookmark saves a bookmark, ignoring the write if the natural key
// already exists
func (r *PostgresBookmarkRepository) UpsertBookmark(bookmark *models.Bookmark) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_id"}, {Name: "post_id"}},
		DoNothing: true,
	}).Create(bookmark).Error
}

// UpsertBookmarks saves a batch of bookmarks with the same conflict policy
func (r *PostgresBookmarkRepository) UpsertBookmarks(bookmarks []models.Bookmark) error {
	if len(bookmarks) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_id"}, {Name: "post_id"}},
		DoNothing: true,
	}).Create(&bookmarks).Error
}

// DeleteBookmark removes a bookmark by its natural key
func (r *PostgresBookmarkRepository) DeleteBookmark(profileID, postID string) error {
	res := r.db.Where("profile_id = ? AND post_id = ?", profileID, postID).Delete(&models.Bookmark{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("bookmark not found")
	}
	return nil
}

// IsBookmarked checks if a profile has bookmarked a specific post
func (r *PostgresBookmarkRepository) IsBookmarked(profileID, postID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Bookmark{}).Where("profile_id = ? AND post_id = ?", profileID, postID).Count(&count).Error
	return count > 0, err
}

// ListByProfile retrieves a profile's bookmarks, most recent first
func (r *PostgresBookmarkRepository) ListByProfile(profileID string) ([]models.Bookmark, error) {
	bookmarks := []models.Bookmark{}
	err := r.db.Where("profile_id = ?", profileID).Order("created_at DESC").Find(&bookmarks).Error
	return bookmarks, err
}

// ClearByProfile removes every bookmark a profile holds
func (r *PostgresBookmarkRepository) ClearByProfile(profileID string) error {
	return r.db.Where("profile_id = ?", profileID).Delete(&models.Bookmark{}).Error
}
