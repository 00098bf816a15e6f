package auditlog

import (
	"context"
	"encoding/json"
	"log"
)

type Service interface {
	// LogAction is best-effort: a failed audit write is logged, never
	// propagated, so it cannot break the action being audited.
	LogAction(ctx context.Context, adminID *uint, action string, details map[string]interface{}, ip, status string)
	List(f ListFilter) ([]AuditLog, int64, error)
}

type service struct {
	repo *Repository
}

func NewService(r *Repository) Service {
	return &service{repo: r}
}

func (s *service) LogAction(ctx context.Context, adminID *uint, action string, details map[string]interface{}, ip, status string) {
	payload, err := json.Marshal(details)
	if err != nil {
		log.Printf("⚠️ audit details marshal failed for %s: %v", action, err)
		payload = []byte("{}")
	}

	entry := &AuditLog{
		AdminID:   adminID,
		Action:    action,
		Details:   payload,
		IPAddress: ip,
		Status:    status,
	}
	if err := s.repo.Create(entry); err != nil {
		log.Printf("⚠️ audit write failed for %s: %v", action, err)
	}
}

func (s *service) List(f ListFilter) ([]AuditLog, int64, error) {
	return s.repo.List(f)
}
