package audit_logs

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(auditLog *AuditLog) error {
	if auditLog.ID == uuid.Nil {
		auditLog.ID = uuid.New()
	}

	if auditLog.CreatedAt.IsZero() {
		auditLog.CreatedAt = time.Now().UTC()
	}

	return r.db.Create(auditLog).Error
}

func (r *AuditLogRepository) GetByWorkspaceID(
	workspaceID uuid.UUID,
	request *GetAuditLogsRequest,
) ([]*AuditLogDTO, int64, error) {
	query := r.db.Model(&AuditLog{}).Where("audit_logs.workspace_id = ?", workspaceID)

	if request.BeforeDate != nil {
		query = query.Where("audit_logs.created_at < ?", *request.BeforeDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []*AuditLogDTO

	if err := query.
		Select("audit_logs.*, users.email AS user_email, users.name AS user_name").
		Joins("LEFT JOIN users ON users.id = audit_logs.user_id").
		Order("audit_logs.created_at DESC").
		Limit(request.Limit).
		Offset(request.Offset).
		Scan(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
