package registration

import (
	"context"
	"errors"
	"testing"
)

type fakeRepo struct {
	rows    []Registration
	nextID  uint
	created int
}

func (f *fakeRepo) Create(reg *Registration) error {
	f.nextID++
	reg.ID = f.nextID
	f.rows = append(f.rows, *reg)
	f.created++
	return nil
}

func (f *fakeRepo) GetAll() ([]Registration, error)            { return f.rows, nil }
func (f *fakeRepo) GetFiltered(Filter) ([]Registration, error) { return f.rows, nil }

func (f *fakeRepo) GetByID(id uint) (Registration, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return Registration{}, errors.New("not found")
}

func (f *fakeRepo) UpdateStatus(id uint, status string) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Status = status
			return nil
		}
	}
	return errors.New("not found")
}

type fakeSnapshot struct {
	repo      *fakeRepo
	regs      []Registration
	cats      map[uint]CategoryInfo
	pans      map[uint]string
	refreshes int
}

func (f *fakeSnapshot) Registrations() []Registration { return f.regs }

func (f *fakeSnapshot) RefreshRegistrations() error {
	f.refreshes++
	f.regs = append([]Registration(nil), f.repo.rows...)
	return nil
}

func (f *fakeSnapshot) CategoryInfo(id uint) (CategoryInfo, bool) {
	c, ok := f.cats[id]
	return c, ok
}

func (f *fakeSnapshot) PanchayathName(id uint) (string, bool) {
	p, ok := f.pans[id]
	return p, ok
}

type fakePublisher struct {
	tables []string
}

func (f *fakePublisher) Publish(_ context.Context, table string) error {
	f.tables = append(f.tables, table)
	return nil
}

func newTestService() (*Service, *fakeRepo, *fakeSnapshot, *fakePublisher) {
	repo := &fakeRepo{}
	snap := &fakeSnapshot{
		repo: repo,
		cats: map[uint]CategoryInfo{
			1: {ID: 1, Name: "Tailoring", ActualFee: 500, OfferFee: 250},
		},
		pans: map[uint]string{
			7: "Kumarakom",
		},
	}
	bus := &fakePublisher{}
	return NewService(repo, snap, bus), repo, snap, bus
}

func validDraft() Draft {
	return Draft{
		CategoryID:   1,
		Name:         "Anil Kumar",
		Address:      "House 12, Main Road",
		MobileNumber: "9876543210",
		PanchayathID: 7,
		Ward:         "4",
	}
}

func TestGenerateCustomerID(t *testing.T) {
	cases := []struct {
		mobile   string
		name     string
		expected string
	}{
		{"9876543210", "Anil", "ESEP9876543210A"},
		{"9876543210", "anil", "ESEP9876543210A"},
		{"1234567890", "Beena Thomas", "ESEP1234567890B"},
		{"1234567890", "", "ESEP1234567890"},
	}
	for _, tc := range cases {
		got := GenerateCustomerID(tc.mobile, tc.name)
		if got != tc.expected {
			t.Fatalf("GenerateCustomerID(%q, %q) = %q, expected %q", tc.mobile, tc.name, got, tc.expected)
		}
	}
}

func TestValidate_FirstFailureWins(t *testing.T) {
	svc, _, _, _ := newTestService()

	cases := []struct {
		name     string
		mutate   func(*Draft)
		expected error
	}{
		{"missing name", func(d *Draft) { d.Name = "  " }, ErrNameRequired},
		{"missing address", func(d *Draft) { d.Address = "" }, ErrAddressRequired},
		{"short mobile", func(d *Draft) { d.MobileNumber = "12345" }, ErrInvalidMobile},
		{"non-numeric mobile", func(d *Draft) { d.MobileNumber = "98765abcde" }, ErrInvalidMobile},
		{"missing panchayath", func(d *Draft) { d.PanchayathID = 0 }, ErrPanchayathRequired},
		{"missing ward", func(d *Draft) { d.Ward = "" }, ErrWardRequired},
	}
	for _, tc := range cases {
		d := validDraft()
		tc.mutate(&d)
		if err := svc.Validate(d); !errors.Is(err, tc.expected) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.expected, err)
		}
	}

	// Name check runs before the mobile check even when both fail.
	d := validDraft()
	d.Name = ""
	d.MobileNumber = "bad"
	if err := svc.Validate(d); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected name error to win, got %v", err)
	}
}

func TestSubmit_CreatesPendingWithSnapshotNames(t *testing.T) {
	svc, repo, snap, bus := newTestService()

	reg, cat, err := svc.Submit(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if reg.CustomerID != "ESEP9876543210A" {
		t.Fatalf("unexpected customer id %q", reg.CustomerID)
	}
	if reg.Status != StatusPending {
		t.Fatalf("expected status pending, got %q", reg.Status)
	}
	if reg.CategoryName != "Tailoring" || reg.PanchayathName != "Kumarakom" {
		t.Fatalf("names not snapshotted: %q / %q", reg.CategoryName, reg.PanchayathName)
	}
	if cat.OfferFee != 250 {
		t.Fatalf("expected fee recap from category, got %+v", cat)
	}
	if repo.created != 1 {
		t.Fatalf("expected 1 insert, got %d", repo.created)
	}
	if snap.refreshes != 1 {
		t.Fatalf("expected snapshot refresh after submit, got %d", snap.refreshes)
	}
	if len(bus.tables) != 1 || bus.tables[0] != "registrations" {
		t.Fatalf("expected registrations change published, got %v", bus.tables)
	}
}

func TestSubmit_DuplicateMobileRejectedWithoutWrite(t *testing.T) {
	svc, repo, snap, _ := newTestService()

	if _, _, err := svc.Submit(context.Background(), validDraft()); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	d := validDraft()
	d.Name = "Different Person"
	_, _, err := svc.Submit(context.Background(), d)
	if !errors.Is(err, ErrDuplicateMobile) {
		t.Fatalf("expected duplicate mobile error, got %v", err)
	}
	if repo.created != 1 {
		t.Fatalf("duplicate submit must not write, got %d inserts", repo.created)
	}
	if snap.refreshes != 1 {
		t.Fatalf("duplicate submit must not refresh, got %d", snap.refreshes)
	}
}

func TestSubmit_UnknownCategoryOrPanchayath(t *testing.T) {
	svc, _, _, _ := newTestService()

	d := validDraft()
	d.CategoryID = 99
	if _, _, err := svc.Submit(context.Background(), d); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected category not found, got %v", err)
	}

	d = validDraft()
	d.PanchayathID = 99
	if _, _, err := svc.Submit(context.Background(), d); !errors.Is(err, ErrPanchayathNotFound) {
		t.Fatalf("expected panchayath not found, got %v", err)
	}
}

func TestUpdateStatus_OnlyPendingTransitions(t *testing.T) {
	svc, repo, _, _ := newTestService()

	reg, _, err := svc.Submit(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if err := svc.UpdateStatus(context.Background(), reg.ID, "archived"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition for unknown status, got %v", err)
	}

	if err := svc.UpdateStatus(context.Background(), reg.ID, StatusApproved); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	got, _ := repo.GetByID(reg.ID)
	if got.Status != StatusApproved {
		t.Fatalf("expected approved, got %q", got.Status)
	}

	// Approved is terminal.
	if err := svc.UpdateStatus(context.Background(), reg.ID, StatusRejected); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected terminal status to refuse transition, got %v", err)
	}

	if err := svc.UpdateStatus(context.Background(), 404, StatusApproved); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLookup_CustomerIDThenMobile(t *testing.T) {
	svc, _, snap, _ := newTestService()

	if _, _, err := svc.Submit(context.Background(), validDraft()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if reg, found := svc.Lookup("ESEP9876543210A"); !found || reg.Name != "Anil Kumar" {
		t.Fatalf("customer id lookup failed: found=%v reg=%+v", found, reg)
	}
	if reg, found := svc.Lookup("9876543210"); !found || reg.Name != "Anil Kumar" {
		t.Fatalf("mobile lookup failed: found=%v reg=%+v", found, reg)
	}
	if _, found := svc.Lookup(" 9876543210 "); !found {
		t.Fatalf("lookup should trim whitespace")
	}
	if _, found := svc.Lookup("0000000000"); found {
		t.Fatalf("lookup should miss unknown number")
	}
	if _, found := svc.Lookup(""); found {
		t.Fatalf("empty query should miss")
	}

	// The lookup reads the snapshot, not the repo: an unrefreshed snapshot
	// does not see later rows.
	snap.regs = nil
	if _, found := svc.Lookup("9876543210"); found {
		t.Fatalf("lookup must go through the snapshot")
	}
}
