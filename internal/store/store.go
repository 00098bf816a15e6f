// Package store holds the in-memory snapshot of domain tables that public
// reads and admin dashboards are served from. Each table is refreshed by
// replacing the whole slice with a fresh fetch; rows are never patched in
// place, so readers always see a consistent copy of one fetch.
package store

import (
	"context"
	"log"
	"sync"

	"github.com/esepkerala/registration-backend/internal/announcement"
	"github.com/esepkerala/registration-backend/internal/auth"
	"github.com/esepkerala/registration-backend/internal/category"
	"github.com/esepkerala/registration-backend/internal/panchayath"
	"github.com/esepkerala/registration-backend/internal/realtime"
	"github.com/esepkerala/registration-backend/internal/registration"
)

// Sources are the fetch functions the store refreshes from. In production
// these are the gorm repositories; tests swap in stubs.
type Sources struct {
	Categories    func() ([]category.Category, error)
	Panchayaths   func() ([]panchayath.Panchayath, error)
	Registrations func() ([]registration.Registration, error)
	Admins        func() ([]auth.Admin, error)
	Announcements func() ([]announcement.Announcement, error)
}

type Subscriber interface {
	Subscribe(ctx context.Context, tables ...string) <-chan string
}

type Store struct {
	sources Sources

	mu            sync.RWMutex
	categories    []category.Category
	panchayaths   []panchayath.Panchayath
	registrations []registration.Registration
	admins        []auth.Admin
	announcements []announcement.Announcement
	loading       bool
	lastErr       string
}

func New(sources Sources) *Store {
	return &Store{sources: sources}
}

// RefreshAll loads every table once. Called at startup so the first request
// never sees an empty store.
func (s *Store) RefreshAll() {
	if err := s.RefreshCategories(); err != nil {
		log.Printf("❌ Initial categories load failed: %v", err)
	}
	if err := s.RefreshPanchayaths(); err != nil {
		log.Printf("❌ Initial panchayaths load failed: %v", err)
	}
	if err := s.RefreshRegistrations(); err != nil {
		log.Printf("❌ Initial registrations load failed: %v", err)
	}
	if err := s.RefreshAdmins(); err != nil {
		log.Printf("❌ Initial admins load failed: %v", err)
	}
	if err := s.RefreshAnnouncements(); err != nil {
		log.Printf("❌ Initial announcements load failed: %v", err)
	}
}

// Start refreshes the matching table whenever the bus reports a change.
// Runs until ctx is cancelled.
func (s *Store) Start(ctx context.Context, bus Subscriber) {
	changes := bus.Subscribe(ctx, realtime.AllTables()...)
	go func() {
		for table := range changes {
			var err error
			switch table {
			case realtime.TableCategories:
				err = s.RefreshCategories()
			case realtime.TablePanchayaths:
				err = s.RefreshPanchayaths()
			case realtime.TableRegistrations:
				err = s.RefreshRegistrations()
			case realtime.TableAdmins:
				err = s.RefreshAdmins()
			case realtime.TableAnnouncements:
				err = s.RefreshAnnouncements()
			}
			if err != nil {
				log.Printf("❌ Store refresh for %s failed: %v", table, err)
			}
		}
	}()
}

// RefreshCategories is the only refresh that raises the loading flag: the
// landing page blocks on categories, the other tables load quietly behind it.
func (s *Store) RefreshCategories() error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	rows, err := s.sources.Categories()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err.Error()
		return err
	}
	s.categories = rows
	s.lastErr = ""
	return nil
}

func (s *Store) RefreshPanchayaths() error {
	rows, err := s.sources.Panchayaths()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err.Error()
		return err
	}
	s.panchayaths = rows
	return nil
}

func (s *Store) RefreshRegistrations() error {
	rows, err := s.sources.Registrations()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err.Error()
		return err
	}
	s.registrations = rows
	return nil
}

func (s *Store) RefreshAdmins() error {
	rows, err := s.sources.Admins()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err.Error()
		return err
	}
	s.admins = rows
	return nil
}

func (s *Store) RefreshAnnouncements() error {
	rows, err := s.sources.Announcements()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err.Error()
		return err
	}
	s.announcements = rows
	return nil
}

func (s *Store) Categories() []category.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories
}

func (s *Store) Panchayaths() []panchayath.Panchayath {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.panchayaths
}

func (s *Store) Registrations() []registration.Registration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registrations
}

func (s *Store) Admins() []auth.Admin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admins
}

func (s *Store) Announcements() []announcement.Announcement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.announcements
}

// CategoryInfo resolves a category's fee recap from the snapshot.
func (s *Store) CategoryInfo(id uint) (registration.CategoryInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.ID == id {
			return registration.CategoryInfo{
				ID:        c.ID,
				Name:      c.Name,
				ActualFee: c.ActualFee,
				OfferFee:  c.OfferFee,
			}, true
		}
	}
	return registration.CategoryInfo{}, false
}

func (s *Store) PanchayathName(id uint) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.panchayaths {
		if p.ID == id {
			return p.Name, true
		}
	}
	return "", false
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastError returns the most recent refresh failure, empty once a categories
// refresh succeeds again.
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}
