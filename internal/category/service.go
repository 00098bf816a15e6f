package category

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/esepkerala/registration-backend/internal/realtime"
)

var ErrNameRequired = errors.New("category name is required")

// Snapshot is the slice of the in-memory store this package reads and
// refreshes. The store re-fetches the whole table, never single rows.
type Snapshot interface {
	Categories() []Category
	RefreshCategories() error
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

// ListActive serves the public category listing from the store snapshot.
func (s *Service) ListActive() []Category {
	return s.Snap.Categories()
}

func (s *Service) ListAll() ([]Category, error) {
	return s.Repo.GetAll()
}

func (s *Service) GetByID(id uint) (Category, error) {
	return s.Repo.GetByID(id)
}

type CreateInput struct {
	Name        string
	Description string
	ActualFee   float64
	OfferFee    float64
	ImageURL    string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrNameRequired
	}

	c := &Category{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		ActualFee:   in.ActualFee,
		OfferFee:    in.OfferFee,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		IsActive:    true,
	}
	if err := s.Repo.Create(c); err != nil {
		return nil, err
	}

	s.notifyChanged(ctx)
	return c, nil
}

// UpdateInput carries a partial patch; nil fields are not written.
type UpdateInput struct {
	Name        *string
	Description *string
	ActualFee   *float64
	OfferFee    *float64
	ImageURL    *string
	IsActive    *bool
}

func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) error {
	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		updates["description"] = strings.TrimSpace(*in.Description)
	}
	if in.ActualFee != nil {
		updates["actual_fee"] = *in.ActualFee
	}
	if in.OfferFee != nil {
		updates["offer_fee"] = *in.OfferFee
	}
	if in.ImageURL != nil {
		updates["image_url"] = strings.TrimSpace(*in.ImageURL)
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

// Delete hard-deletes the category. Registrations keep their denormalized
// category name and a dangling category id; there is no cascade.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}

	s.notifyChanged(ctx)
	return nil
}

func (s *Service) notifyChanged(ctx context.Context) {
	if err := s.Snap.RefreshCategories(); err != nil {
		log.Printf("⚠️ category snapshot refresh failed: %v", err)
	}
	if err := s.Bus.Publish(ctx, realtime.TableCategories); err != nil {
		log.Printf("⚠️ failed to publish categories change: %v", err)
	}
}
