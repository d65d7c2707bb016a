package repositories

import (
	"github.com/aurafeed/backend/internal/models"
	"gorm.io/gorm"
)

// AttachmentRepository defines the interface for attachment record
// operations. Attachments are write-once rows created during post creation.
type AttachmentRepository interface {
	CreateAttachment(attachment *models.Attachment) error
	ListByPostIDs(postIDs []string) ([]models.Attachment, error)
}

// PostgresAttachmentRepository implements AttachmentRepository
type PostgresAttachmentRepository struct {
	db *gorm.DB
}

// NewPostgresAttachmentRepository creates a new PostgresAttachmentRepository
func NewPostgresAttachmentRepository(db *gorm.DB) *PostgresAttachmentRepository {
	return &PostgresAttachmentRepository{db: db}
}

// CreateAttachment creates a new attachment record in PostgreSQL
func (r *PostgresAttachmentRepository) CreateAttachment(attachment *models.Attachment) error {
	return r.db.Create(attachment).Error
}

// ListByPostIDs retrieves all attachments for the given posts ordered by
// display position
func (r *PostgresAttachmentRepository) ListByPostIDs(postIDs []string) ([]models.Attachment, error) {
	attachments := []models.Attachment{}
	if len(postIDs) == 0 {
		return attachments, nil
	}
	if err := r.db.Where("post_id IN ?", postIDs).Order("position ASC").Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}
