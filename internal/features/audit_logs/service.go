package audit_logs

import (
	"taskplane-backend/internal/util/logger"

	"github.com/google/uuid"
)

var log = logger.GetLogger()

const (
	defaultLimit = 100
	maxLimit     = 500
)

type AuditLogService struct {
	auditLogRepository *AuditLogRepository
}

func NewAuditLogService(auditLogRepository *AuditLogRepository) *AuditLogService {
	return &AuditLogService{auditLogRepository}
}

// WriteAuditLog records an audit trail entry. Failures are logged and never
// propagate: the audit trail must not break the mutation it describes.
func (s *AuditLogService) WriteAuditLog(message string, userID, workspaceID *uuid.UUID) {
	auditLog := &AuditLog{
		UserID:      userID,
		WorkspaceID: workspaceID,
		Message:     message,
	}

	if err := s.auditLogRepository.Create(auditLog); err != nil {
		log.Error("Failed to write audit log", "message", message, "error", err)
	}
}

func (s *AuditLogService) GetWorkspaceAuditLogs(
	workspaceID uuid.UUID,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	if request.Limit <= 0 {
		request.Limit = defaultLimit
	}
	if request.Limit > maxLimit {
		request.Limit = maxLimit
	}
	if request.Offset < 0 {
		request.Offset = 0
	}

	logs, total, err := s.auditLogRepository.GetByWorkspaceID(workspaceID, request)
	if err != nil {
		return nil, err
	}

	return &GetAuditLogsResponse{
		AuditLogs: logs,
		Total:     total,
		Limit:     request.Limit,
		Offset:    request.Offset,
	}, nil
}
