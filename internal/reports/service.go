package reports

import (
	"context"

	"github.com/esepkerala/registration-backend/internal/auditlog"
	"github.com/esepkerala/registration-backend/internal/registration"
)

// Service fetches the filtered rows and hands them to the exporter. Every
// download attempt is audited, including failures.
type Service interface {
	ExportRegistrations(ctx context.Context, f registration.Filter, format string, adminID *uint, ip string) ([]byte, string, string, error)
}

type service struct {
	repo     registration.Repository
	exporter Exporter
	auditSvc auditlog.Service
}

func NewService(repo registration.Repository, exporter Exporter, auditSvc auditlog.Service) Service {
	return &service{repo: repo, exporter: exporter, auditSvc: auditSvc}
}

func (s *service) ExportRegistrations(ctx context.Context, f registration.Filter, format string, adminID *uint, ip string) ([]byte, string, string, error) {
	regs, err := s.repo.GetFiltered(f)
	if err != nil {
		s.auditSvc.LogAction(ctx, adminID, "REGISTRATIONS_EXPORT_FAILED", map[string]interface{}{
			"format": format,
			"error":  err.Error(),
		}, ip, "failure")
		return nil, "", "", err
	}

	data, filename, mimeType, err := s.exporter.ExportRegistrations(format, regs)
	if err != nil {
		s.auditSvc.LogAction(ctx, adminID, "REGISTRATIONS_EXPORT_FAILED", map[string]interface{}{
			"format": format,
			"error":  err.Error(),
		}, ip, "failure")
		return nil, "", "", err
	}

	s.auditSvc.LogAction(ctx, adminID, "REGISTRATIONS_EXPORT", map[string]interface{}{
		"format":   format,
		"filename": filename,
		"rows":     len(regs),
	}, ip, "success")

	return data, filename, mimeType, nil
}
