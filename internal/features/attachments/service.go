package attachments

import (
	"context"
	"errors"
	"fmt"
	"io"

	"taskplane-backend/internal/features/tasks"
	users_interfaces "taskplane-backend/internal/features/users/interfaces"
	"taskplane-backend/internal/util/logger"

	"github.com/google/uuid"
)

var log = logger.GetLogger()

var (
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrFileTooLarge       = errors.New("file exceeds the maximum allowed size")
)

// 50 MiB, matching the router body limit.
const maxFileSizeBytes = 50 << 20

type AttachmentService struct {
	attachmentStore AttachmentStore
	blobStorage     BlobStorage
	taskService     *tasks.TaskService
	auditLogWriter  users_interfaces.AuditLogWriter
}

func NewAttachmentService(
	attachmentStore AttachmentStore,
	blobStorage BlobStorage,
	taskService *tasks.TaskService,
	auditLogWriter users_interfaces.AuditLogWriter,
) *AttachmentService {
	return &AttachmentService{attachmentStore, blobStorage, taskService, auditLogWriter}
}

// Upload streams the payload to blob storage and records the metadata row.
// The blob is written first so a crash leaves an orphan blob, never a row
// pointing at nothing.
func (s *AttachmentService) Upload(
	ctx context.Context,
	workspaceID uuid.UUID,
	taskID uuid.UUID,
	uploaderID uuid.UUID,
	fileName string,
	contentType string,
	size int64,
	reader io.Reader,
) (*Attachment, error) {
	if size > maxFileSizeBytes {
		return nil, ErrFileTooLarge
	}

	task, err := s.taskService.GetTask(workspaceID, taskID)
	if err != nil {
		return nil, err
	}

	attachment := &Attachment{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		TaskID:      task.ID,
		UploaderID:  uploaderID,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   size,
	}
	attachment.ObjectKey = fmt.Sprintf("%s/%s/%s", workspaceID, task.ID, attachment.ID)

	if err := s.blobStorage.Put(
		ctx, attachment.ObjectKey, reader, size, contentType,
	); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	if err := s.attachmentStore.CreateAttachment(attachment); err != nil {
		if removeErr := s.blobStorage.Remove(ctx, attachment.ObjectKey); removeErr != nil {
			log.Error("Failed to clean up orphan blob",
				"objectKey", attachment.ObjectKey, "error", removeErr)
		}

		return nil, fmt.Errorf("failed to record attachment: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("File uploaded: %s", fileName),
		&uploaderID,
		&workspaceID,
	)

	return attachment, nil
}

func (s *AttachmentService) GetTaskAttachments(
	workspaceID uuid.UUID,
	taskID uuid.UUID,
) ([]*Attachment, error) {
	if _, err := s.taskService.GetTask(workspaceID, taskID); err != nil {
		return nil, err
	}

	return s.attachmentStore.GetTaskAttachments(taskID)
}

// GetDownloadURL returns a short-lived presigned URL for the attachment.
func (s *AttachmentService) GetDownloadURL(
	ctx context.Context,
	workspaceID uuid.UUID,
	attachmentID uuid.UUID,
) (string, error) {
	attachment, err := s.getWorkspaceAttachment(workspaceID, attachmentID)
	if err != nil {
		return "", err
	}

	return s.blobStorage.PresignedGetURL(ctx, attachment.ObjectKey, attachment.FileName)
}

func (s *AttachmentService) Delete(
	ctx context.Context,
	workspaceID uuid.UUID,
	attachmentID uuid.UUID,
	actorID uuid.UUID,
) error {
	attachment, err := s.getWorkspaceAttachment(workspaceID, attachmentID)
	if err != nil {
		return err
	}

	if err := s.blobStorage.Remove(ctx, attachment.ObjectKey); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}

	if err := s.attachmentStore.DeleteAttachment(attachment.ID); err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("File deleted: %s", attachment.FileName),
		&actorID,
		&workspaceID,
	)

	return nil
}

func (s *AttachmentService) getWorkspaceAttachment(
	workspaceID uuid.UUID,
	attachmentID uuid.UUID,
) (*Attachment, error) {
	attachment, err := s.attachmentStore.GetAttachmentByID(attachmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}

	if attachment == nil || attachment.WorkspaceID != workspaceID {
		return nil, ErrAttachmentNotFound
	}

	return attachment, nil
}
