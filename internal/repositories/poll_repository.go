package repositories

import (
	"fmt"

	"github.com/aurafeed/backend/internal/models"
	"gorm.io/gorm"
)

// PollRepository defines the interface for poll, option, and vote data
// operations. Options are fixed at creation; only votes change afterwards.
type PollRepository interface {
	CreatePoll(poll *models.Poll, options []models.PollOption) error
	GetPoll(pollID string) (*models.Poll, error)
	GetOption(optionID string) (*models.PollOption, error)
	ListPollsByPostIDs(postIDs []string) ([]models.Poll, error)
	ListOptionsByPollIDs(pollIDs []string) ([]models.PollOption, error)
	ListVotesByPollIDs(pollIDs []string) ([]models.PollVote, error)
	CreateVote(vote *models.PollVote) error
	DeleteVote(pollID, profileID string) error
	GetVote(pollID, profileID string) (*models.PollVote, error)
}

// PostgresPollRepository implements PollRepository for PostgreSQL
type PostgresPollRepository struct {
	db *gorm.DB
}

// NewPostgresPollRepository creates a new PostgresPollRepository
func NewPostgresPollRepository(db *gorm.DB) *PostgresPollRepository {
	return &PostgresPollRepository{db: db}
}

// CreatePoll creates a poll row and its option rows together
func (r *PostgresPollRepository) CreatePoll(poll *models.Poll, options []models.PollOption) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(poll).Error; err != nil {
			return err
		}
		return tx.Create(&options).Error
	})
}

// GetPoll retrieves a poll by ID, or nil when none exists
func (r *PostgresPollRepository) GetPoll(pollID string) (*models.Poll, error) {
	var poll models.Poll
	err := r.db.Where("id = ?", pollID).First(&poll).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &poll, nil
}

// GetOption retrieves a poll option by ID, or nil when none exists
func (r *PostgresPollRepository) GetOption(optionID string) (*models.PollOption, error) {
	var option models.PollOption
	err := r.db.Where("id = ?", optionID).First(&option).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &option, nil
}

// ListPollsByPostIDs retrieves all polls belonging to the given posts
func (r *PostgresPollRepository) ListPollsByPostIDs(postIDs []string) ([]models.Poll, error) {
	polls := []models.Poll{}
	if len(postIDs) == 0 {
		return polls, nil
	}
	if err := r.db.Where("post_id IN ?", postIDs).Find(&polls).Error; err != nil {
		return nil, err
	}
	return polls, nil
}

// ListOptionsByPollIDs retrieves all options for the given polls ordered by
// display position
func (r *PostgresPollRepository) ListOptionsByPollIDs(pollIDs []string) ([]models.PollOption, error) {
	options := []models.PollOption{}
	if len(pollIDs) == 0 {
		return options, nil
	}
	if err := r.db.Where("poll_id IN ?", pollIDs).Order("position ASC").Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

// ListVotesByPollIDs retrieves all votes cast in the given polls
func (r *PostgresPollRepository) ListVotesByPollIDs(pollIDs []string) ([]models.PollVote, error) {
	votes := []models.PollVote{}
	if len(pollIDs) == 0 {
		return votes, nil
	}
	if err := r.db.Where("poll_id IN ?", pollIDs).Find(&votes).Error; err != nil {
		return nil, err
	}
	return votes, nil
}

// CreateVote records a vote in PostgreSQL
func (r *PostgresPollRepository) CreateVote(vote *models.PollVote) error {
	return r.db.Create(vote).Error
}

// DeleteVote retracts a profile's vote in a poll
func (r *PostgresPollRepository) DeleteVote(pollID, profileID string) error {
	res := r.db.Where("poll_id = ? AND profile_id = ?", pollID, profileID).Delete(&models.PollVote{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("poll vote not found")
	}
	return nil
}

// GetVote retrieves a profile's vote in a poll, or nil when none exists
func (r *PostgresPollRepository) GetVote(pollID, profileID string) (*models.PollVote, error) {
	var vote models.PollVote
	err := r.db.Where("poll_id = ? AND profile_id = ?", pollID, profileID).First(&vote).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &vote, nil
}
