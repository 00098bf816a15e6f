package panchayath

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/esepkerala/registration-backend/internal/realtime"
)

var ErrMissingFields = errors.New("panchayath name and district are required")

type Snapshot interface {
	Panchayaths() []Panchayath
	RefreshPanchayaths() error
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

func (s *Service) ListActive() []Panchayath {
	return s.Snap.Panchayaths()
}

func (s *Service) ListAll() ([]Panchayath, error) {
	return s.Repo.GetAll()
}

func (s *Service) GetByID(id uint) (Panchayath, error) {
	return s.Repo.GetByID(id)
}

func (s *Service) Create(ctx context.Context, name, district string) (*Panchayath, error) {
	name = strings.TrimSpace(name)
	district = strings.TrimSpace(district)
	if name == "" || district == "" {
		return nil, ErrMissingFields
	}

	p := &Panchayath{Name: name, District: district, IsActive: true}
	if err := s.Repo.Create(p); err != nil {
		return nil, err
	}

	s.notifyChanged(ctx)
	return p, nil
}

type UpdateInput struct {
	Name     *string
	District *string
	IsActive *bool
}

func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) error {
	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.District != nil {
		updates["district"] = strings.TrimSpace(*in.District)
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
	if err := s.Snap.RefreshPanchayaths(); err != nil {
		log.Printf("⚠️ panchayath snapshot refresh failed: %v", err)
	}
	if err := s.Bus.Publish(ctx, realtime.TablePanchayaths); err != nil {
		log.Printf("⚠️ failed to publish panchayaths change: %v", err)
	}
}
