package attachments

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttachmentStore persists attachment metadata rows.
type AttachmentStore interface {
	CreateAttachment(attachment *Attachment) error
	GetAttachmentByID(id uuid.UUID) (*Attachment, error)
	GetTaskAttachments(taskID uuid.UUID) ([]*Attachment, error)
	DeleteAttachment(id uuid.UUID) error
}

type AttachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

func (r *AttachmentRepository) CreateAttachment(attachment *Attachment) error {
	if attachment.ID == uuid.Nil {
		attachment.ID = uuid.New()
	}

	if attachment.CreatedAt.IsZero() {
		attachment.CreatedAt = time.Now().UTC()
	}

	return r.db.Create(attachment).Error
}

func (r *AttachmentRepository) GetAttachmentByID(id uuid.UUID) (*Attachment, error) {
	var attachment Attachment

	if err := r.db.Where("id = ?", id).First(&attachment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &attachment, nil
}

func (r *AttachmentRepository) GetTaskAttachments(taskID uuid.UUID) ([]*Attachment, error) {
	var attachmentList []*Attachment

	if err := r.db.
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&attachmentList).Error; err != nil {
		return nil, err
	}

	return attachmentList, nil
}

func (r *AttachmentRepository) DeleteAttachment(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Attachment{}).Error
}
