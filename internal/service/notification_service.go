package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/school-service/internal/config"
	"github.com/spec-kit/school-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventStudentCreated, n.handleStudentCreated)
	n.dispatcher.Subscribe(events.EventStudentEnrolled, n.handleStudentEnrolled)
	n.dispatcher.Subscribe(events.EventMedicalRecordAdded, n.handleMedicalRecordAdded)
}

func (n *NotificationService) handleStudentCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("StudentCreated", zap.String("student_id", event.StudentID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleStudentEnrolled(ctx context.Context, event events.Event) error {
	n.logger.Info("StudentEnrolled", zap.String("student_id", event.StudentID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleMedicalRecordAdded(ctx context.Context, event events.Event) error {
	n.logger.Info("MedicalRecordAdded", zap.String("student_id", event.StudentID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("student_id", event.StudentID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("student_id", event.StudentID),
		zap.String("event_type", string(event.Type)))
}
