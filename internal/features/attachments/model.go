package attachments

import (
	"time"

	"github.com/google/uuid"
)

type Attachment struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id"`
	WorkspaceID uuid.UUID `json:"workspaceId" gorm:"column:workspace_id"`
	TaskID      uuid.UUID `json:"taskId"      gorm:"column:task_id"`
	UploaderID  uuid.UUID `json:"uploaderId"  gorm:"column:uploader_id"`
	FileName    string    `json:"fileName"    gorm:"column:file_name"`
	ContentType string    `json:"contentType" gorm:"column:content_type"`
	SizeBytes   int64     `json:"sizeBytes"   gorm:"column:size_bytes"`
	ObjectKey   string    `json:"-"           gorm:"column:object_key"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at"`
}

func (Attachment) TableName() string {
	return "attachments"
}
