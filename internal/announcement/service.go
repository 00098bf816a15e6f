package announcement

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/esepkerala/registration-backend/internal/realtime"
)

var ErrTitleRequired = errors.New("announcement title is required")

type Snapshot interface {
	Announcements() []Announcement
	RefreshAnnouncements() error
}

type Publisher interface {
	Publish(ctx context.Context, table string) error
}

type Service struct {
	Repo *Repository
	Snap Snapshot
	Bus  Publisher
}

func NewService(r *Repository, snap Snapshot, bus Publisher) *Service {
	return &Service{Repo: r, Snap: snap, Bus: bus}
}

func (s *Service) ListActive() []Announcement {
	return s.Snap.Announcements()
}

func (s *Service) ListAll() ([]Announcement, error) {
	return s.Repo.GetAll()
}

func (s *Service) Create(ctx context.Context, title, content string) (*Announcement, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}

	a := &Announcement{
		Title:    strings.TrimSpace(title),
		Content:  content,
		IsActive: true,
	}
	if err := s.Repo.Create(a); err != nil {
		return nil, err
	}

	s.notifyChanged(ctx)
	return a, nil
}

type UpdateInput struct {
	Title    *string
	Content  *string
	IsActive *bool
}

func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) error {
	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		updates["content"] = *in.Content
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}

	if err := s.Repo.Update(id, updates); err != nil {
		return err
	}

	s.notifyChanged(ctx)
	return nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}

	s.notifyChanged(ctx)
	return nil
}

func (s *Service) notifyChanged(ctx context.Context) {
	if err := s.Snap.RefreshAnnouncements(); err != nil {
		log.Printf("⚠️ announcement snapshot refresh failed: %v", err)
	}
	if err := s.Bus.Publish(ctx, realtime.TableAnnouncements); err != nil {
		log.Printf("⚠️ failed to publish announcements change: %v", err)
	}
}
