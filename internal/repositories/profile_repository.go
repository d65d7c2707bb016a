package repositories

import (
	"github.com/aurafeed/backend/internal/models"
	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	CreateProfile(profile *models.Profile) error
	GetProfileByID(id string) (*models.Profile, error)
	GetProfileByEmail(email string) (*models.Profile, error)
	GetProfileByHandle(handle string) (*models.Profile, error)
	ListByIDs(ids []string) ([]models.Profile, error)
	UpdateProfile(profile *models.Profile) error
	SetAvatar(id string, path *string) error
}

// PostgresProfileRepository implements ProfileRepository for PostgreSQL
type PostgresProfileRepository struct {
	db *gorm.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// CreateProfile creates a new profile in PostgreSQL
func (r *PostgresProfileRepository) CreateProfile(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

// GetProfileByID retrieves a profile by ID from PostgreSQL
func (r *PostgresProfileRepository) GetProfileByID(id string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfileByEmail retrieves a profile by email from PostgreSQL
func (r *PostgresProfileRepository) GetProfileByEmail(email string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("email = ?", email).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfileByHandle retrieves a profile by handle from PostgreSQL
func (r *PostgresProfileRepository) GetProfileByHandle(handle string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("handle = ?", handle).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListByIDs retrieves all profiles matching the given ID set
func (r *PostgresProfileRepository) ListByIDs(ids []string) ([]models.Profile, error) {
	profiles := []models.Profile{}
	if len(ids) == 0 {
		return profiles, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// UpdateProfile updates an existing profile in PostgreSQL
func (r *PostgresProfileRepository) UpdateProfile(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

// SetAvatar updates only the avatar path of a profile; nil clears it
func (r *PostgresProfileRepository) SetAvatar(id string, path *string) error {
	return r.db.Model(&models.Profile{}).Where("id = ?", id).Update("avatar_url", path).Error
}
