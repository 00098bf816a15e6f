package registration

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"

	"github.com/esepkerala/registration-backend/internal/realtime"
)

var (
	ErrNameRequired       = errors.New("name is required")
	ErrAddressRequired    = errors.New("address is required")
	ErrInvalidMobile      = errors.New("valid 10-digit mobile number is required")
	ErrPanchayathRequired = errors.New("panchayath is required")
	ErrWardRequired       = errors.New("ward is required")
	ErrDuplicateMobile    = errors.New("this mobile number is already registered, each person can register only once")
	ErrCategoryNotFound   = errors.New("selected category not found or inactive")
	ErrPanchayathNotFound = errors.New("selected panchayath not found or inactive")
	ErrInvalidTransition  = errors.New("only pending registrations can be approved or rejected")
	ErrNotFound           = errors.New("registration not found")
)

var mobilePattern = regexp.MustCompile(`^\d{10}$`)

// CategoryInfo is the fee recap shown on the confirm step.
type CategoryInfo struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	ActualFee float64 `json:"actual_fee"`
	OfferFee  float64 `json:"offer_fee"`
}

// Snapshot is the slice of the in-memory store this package reads. The
// duplicate-phone check and the status lookup run against this snapshot, not
// a fresh query, so they are only as fresh as the last registrations fetch.
type Snapshot interface {
	Registrations() []Registration
	RefreshRegistrations() error
	CategoryInfo(id uint) (CategoryInfo, bool)
	PanchayathName(id uint) (string, bool)
}

type Publisher interface {
	Publish(ctx context.Context, table string) error
}

type Service struct {
	Repo Repository
	Snap Snapshot
	Bus  Publisher
}

func NewService(r Repository, snap Snapshot, bus Publisher) *Service {
	return &Service{Repo: r, Snap: snap, Bus: bus}
}

// GenerateCustomerID derives the human-readable customer id from the phone
// number and the first letter of the name. Two registrants sharing a phone
// digit-string never coexist (duplicate check), so the id is unique among
// live registrations even though the name letter alone would collide.
func GenerateCustomerID(mobile, name string) string {
	firstLetter := ""
	if runes := []rune(name); len(runes) > 0 {
		firstLetter = strings.ToUpper(string(runes[0]))
	}
	return "ESEP" + mobile + firstLetter
}

type Draft struct {
	CategoryID   uint
	Name         string
	Address      string
	MobileNumber string
	PanchayathID uint
	Ward         string
	AgentPro     string
}

// Validate checks the draft the way the form does: message-only errors, first
// failure wins, duplicate check last. No write happens on failure.
func (s *Service) Validate(d Draft) error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(d.Address) == "" {
		return ErrAddressRequired
	}
	if !mobilePattern.MatchString(strings.TrimSpace(d.MobileNumber)) {
		return ErrInvalidMobile
	}
	if d.PanchayathID == 0 {
		return ErrPanchayathRequired
	}
	if strings.TrimSpace(d.Ward) == "" {
		return ErrWardRequired
	}
	if _, exists := s.GetByMobile(strings.TrimSpace(d.MobileNumber)); exists {
		return ErrDuplicateMobile
	}
	return nil
}

// Submit validates the draft, generates the customer id, snapshots the
// category and panchayath names, and inserts with status forced to pending.
// On success the registrations collection is re-fetched before returning, so
// the caller's next read sees its own write.
func (s *Service) Submit(ctx context.Context, d Draft) (*Registration, CategoryInfo, error) {
	if err := s.Validate(d); err != nil {
		return nil, CategoryInfo{}, err
	}

	cat, ok := s.Snap.CategoryInfo(d.CategoryID)
	if !ok {
		return nil, CategoryInfo{}, ErrCategoryNotFound
	}
	panchayathName, ok := s.Snap.PanchayathName(d.PanchayathID)
	if !ok {
		return nil, CategoryInfo{}, ErrPanchayathNotFound
	}

	mobile := strings.TrimSpace(d.MobileNumber)
	name := strings.TrimSpace(d.Name)

	reg := &Registration{
		CustomerID:     GenerateCustomerID(mobile, name),
		CategoryID:     cat.ID,
		CategoryName:   cat.Name,
		Name:           name,
		Address:        strings.TrimSpace(d.Address),
		MobileNumber:   mobile,
		PanchayathID:   d.PanchayathID,
		PanchayathName: panchayathName,
		Ward:           strings.TrimSpace(d.Ward),
		AgentPro:       strings.TrimSpace(d.AgentPro),
		Status:         StatusPending,
	}

	if err := s.Repo.Create(reg); err != nil {
		return nil, CategoryInfo{}, err
	}

	s.notifyChanged(ctx)
	return reg, cat, nil
}

// UpdateStatus moves a pending registration to approved or rejected.
// Approved and rejected are terminal; any other transition is refused.
func (s *Service) UpdateStatus(ctx context.Context, id uint, newStatus string) error {
	if newStatus != StatusApproved && newStatus != StatusRejected {
		return ErrInvalidTransition
	}

	existing, err := s.Repo.GetByID(id)
	if err != nil {
		return ErrNotFound
	}
	if existing.Status != StatusPending {
		return ErrInvalidTransition
	}

	if err := s.Repo.UpdateStatus(id, newStatus); err != nil {
		return err
	}

	s.notifyChanged(ctx)
	return nil
}

// GetByMobile scans the snapshot for an exact mobile number match.
func (s *Service) GetByMobile(mobile string) (Registration, bool) {
	for _, reg := range s.Snap.Registrations() {
		if reg.MobileNumber == mobile {
			return reg, true
		}
	}
	return Registration{}, false
}

// Lookup resolves a free-text status query: exact customer id match first,
// then exact mobile number, over the snapshot. Zero or one result.
func (s *Service) Lookup(query string) (Registration, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Registration{}, false
	}

	regs := s.Snap.Registrations()
	for _, reg := range regs {
		if reg.CustomerID == query {
			return reg, true
		}
	}
	for _, reg := range regs {
		if reg.MobileNumber == query {
			return reg, true
		}
	}
	return Registration{}, false
}

func (s *Service) ListFiltered(f Filter) ([]Registration, error) {
	return s.Repo.GetFiltered(f)
}

func (s *Service) notifyChanged(ctx context.Context) {
	if err := s.Snap.RefreshRegistrations(); err != nil {
		log.Printf("⚠️ registration snapshot refresh failed: %v", err)
	}
	if err := s.Bus.Publish(ctx, realtime.TableRegistrations); err != nil {
		log.Printf("⚠️ failed to publish registrations change: %v", err)
	}
}
