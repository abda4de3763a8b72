package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/cayogarcia/SINC---Video-Tutorial/internal/metrics"
	"github.com/cayogarcia/SINC---Video-Tutorial/internal/models"

	"gorm.io/gorm"
)

const auditQueueSize = 100

// AuditService persists audit entries from a background worker so request
// handlers never wait on the audit table.
type AuditService struct {
	db      *gorm.DB
	logger  *slog.Logger
	entries chan models.AuditLog
}

func NewAuditService(db *gorm.DB, logger *slog.Logger) *AuditService {
	return &AuditService{
		db:      db,
		logger:  logger,
		entries: make(chan models.AuditLog, auditQueueSize),
	}
}

// Start drains the queue until ctx is cancelled, then flushes what is left.
func (s *AuditService) Start(ctx context.Context) {
	for {
		select {
		case entry := <-s.entries:
			s.write(entry)
		case <-ctx.Done():
			for {
				select {
				case entry := <-s.entries:
					s.write(entry)
				default:
					return
				}
			}
		}
	}
}

func (s *AuditService) write(entry models.AuditLog) {
	if err := s.db.Create(&entry).Error; err != nil {
		s.logger.Error("Failed to write audit log", "action", entry.Action, "error", err)
	}
}

func (s *AuditService) LogAction(userID *string, action, entityID string, details interface{}, ip string) {
	var detailText string
	if details != nil {
		detailBytes, err := json.Marshal(details)
		if err != nil {
			s.logger.Warn("Failed to encode audit details", "action", action, "error", err)
		}
		detailText = string(detailBytes)
	}

	entry := models.AuditLog{
		UserID:    userID,
		Action:    action,
		EntityID:  entityID,
		Details:   detailText,
		IPAddress: ip,
		Timestamp: time.Now(),
	}

	select {
	case s.entries <- entry:
	default:
		metrics.RecordAuditDropped()
		s.logger.Warn("Audit channel full, dropping log", "action", action)
	}
}
