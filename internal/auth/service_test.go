package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/esepkerala/registration-backend/config"
	"github.com/esepkerala/registration-backend/internal/auditlog"
)

type fakeAdminRepo struct {
	admins []Admin
	nextID uint
}

func (f *fakeAdminRepo) Create(admin *Admin) error {
	f.nextID++
	admin.ID = f.nextID
	f.admins = append(f.admins, *admin)
	return nil
}

func (f *fakeAdminRepo) FindByUsername(username string) (*Admin, error) {
	for i := range f.admins {
		if f.admins[i].Username == username {
			a := f.admins[i]
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAdminRepo) FindByID(id uint) (Admin, error) {
	for _, a := range f.admins {
		if a.ID == id {
			return a, nil
		}
	}
	return Admin{}, gorm.ErrRecordNotFound
}

func (f *fakeAdminRepo) GetAll() ([]Admin, error) { return f.admins, nil }

func (f *fakeAdminRepo) Update(id uint, updates map[string]interface{}) error {
	for i := range f.admins {
		if f.admins[i].ID == id {
			if v, ok := updates["password_hash"].(string); ok {
				f.admins[i].PasswordHash = v
			}
			if v, ok := updates["role"].(string); ok {
				f.admins[i].Role = v
			}
			if v, ok := updates["is_active"].(bool); ok {
				f.admins[i].IsActive = v
			}
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeAdminRepo) Count() (int64, error) { return int64(len(f.admins)), nil }

type fakeAdminSnapshot struct{ refreshes int }

func (f *fakeAdminSnapshot) RefreshAdmins() error {
	f.refreshes++
	return nil
}

type fakeAdminBus struct{ tables []string }

func (f *fakeAdminBus) Publish(_ context.Context, table string) error {
	f.tables = append(f.tables, table)
	return nil
}

type nopAudit struct{ actions []string }

func (n *nopAudit) LogAction(_ context.Context, _ *uint, action string, _ map[string]interface{}, _, _ string) {
	n.actions = append(n.actions, action)
}

func (n *nopAudit) List(auditlog.ListFilter) ([]auditlog.AuditLog, int64, error) {
	return nil, 0, nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTAccessSecret:    "access-secret",
		JWTRefreshSecret:   "refresh-secret",
		JWTAccessTTLHours:  1,
		JWTRefreshTTLHours: 24,
	}
}

func seedAdmin(repo *fakeAdminRepo, username, password, role string, active bool) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	repo.Create(&Admin{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
	})
}

func newTestAuth() (Service, *fakeAdminRepo, *fakeAdminSnapshot, *fakeAdminBus, *nopAudit) {
	repo := &fakeAdminRepo{}
	snap := &fakeAdminSnapshot{}
	bus := &fakeAdminBus{}
	audit := &nopAudit{}
	return NewService(repo, snap, bus, audit, testConfig()), repo, snap, bus, audit
}

func TestLogin(t *testing.T) {
	svc, repo, _, _, audit := newTestAuth()
	seedAdmin(repo, "root", "secret123", RoleSuper, true)
	seedAdmin(repo, "sleeper", "secret123", RoleLocal, false)

	tokens, admin, err := svc.Login(context.Background(), LoginInput{Username: "root", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", tokens)
	}
	if admin.Username != "root" {
		t.Fatalf("unexpected admin %+v", admin)
	}

	if _, _, err := svc.Login(context.Background(), LoginInput{Username: "root", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), LoginInput{Username: "ghost", Password: "secret123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user must look like bad credentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), LoginInput{Username: "sleeper", Password: "secret123"}); !errors.Is(err, ErrAccountInactive) {
		t.Fatalf("expected inactive account error, got %v", err)
	}

	// One success, three failures, all audited.
	if len(audit.actions) != 4 {
		t.Fatalf("expected 4 audit entries, got %v", audit.actions)
	}
}

func TestLoginTokenClaims(t *testing.T) {
	svc, repo, _, _, _ := newTestAuth()
	seedAdmin(repo, "root", "secret123", RoleSuper, true)

	tokens, _, err := svc.Login(context.Background(), LoginInput{Username: "root", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	token, err := jwt.Parse(tokens.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("access-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("access token does not verify: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["admin_id"].(float64) != 1 || claims["role"].(string) != RoleSuper {
		t.Fatalf("unexpected claims %v", claims)
	}
}

func TestRefresh(t *testing.T) {
	svc, repo, _, _, _ := newTestAuth()
	seedAdmin(repo, "root", "secret123", RoleSuper, true)

	tokens, _, err := svc.Login(context.Background(), LoginInput{Username: "root", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	access, err := svc.Refresh(tokens.RefreshToken)
	if err != nil || access == "" {
		t.Fatalf("refresh failed: %v", err)
	}

	if _, err := svc.Refresh("not-a-token"); err == nil {
		t.Fatalf("garbage refresh token must fail")
	}
	// An access token is signed with the wrong secret for refreshing.
	if _, err := svc.Refresh(tokens.AccessToken); err == nil {
		t.Fatalf("access token must not work as refresh token")
	}

	// Deactivation cuts off refresh even with a valid token.
	inactive := false
	if err := svc.UpdateAdmin(context.Background(), 1, UpdateAdminInput{IsActive: &inactive}); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, err := svc.Refresh(tokens.RefreshToken); !errors.Is(err, ErrAccountInactive) {
		t.Fatalf("expected inactive error on refresh, got %v", err)
	}
}

func TestCreateAdmin(t *testing.T) {
	svc, repo, snap, bus, _ := newTestAuth()
	seedAdmin(repo, "root", "secret123", RoleSuper, true)

	created, err := svc.CreateAdmin(context.Background(), CreateAdminInput{
		Username: "field-officer",
		Password: "changeme1",
		Role:     "Local",
		ActorID:  1,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Role != RoleLocal {
		t.Fatalf("role must be normalised, got %q", created.Role)
	}
	if !created.IsActive {
		t.Fatalf("new admins start active")
	}
	if created.PasswordHash == "changeme1" {
		t.Fatalf("password must be hashed")
	}

	if _, err := svc.CreateAdmin(context.Background(), CreateAdminInput{
		Username: "field-officer", Password: "x", Role: RoleLocal,
	}); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected username taken, got %v", err)
	}
	if _, err := svc.CreateAdmin(context.Background(), CreateAdminInput{
		Username: "other", Password: "x", Role: "overlord",
	}); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected invalid role, got %v", err)
	}

	if snap.refreshes != 1 {
		t.Fatalf("expected 1 snapshot refresh, got %d", snap.refreshes)
	}
	if len(bus.tables) != 1 || bus.tables[0] != "admins" {
		t.Fatalf("expected admins change published, got %v", bus.tables)
	}
}

func TestUpdateAdminSparsePatch(t *testing.T) {
	svc, repo, _, _, _ := newTestAuth()
	seedAdmin(repo, "root", "secret123", RoleSuper, true)
	seedAdmin(repo, "officer", "secret123", RoleLocal, true)

	newRole := RoleUser
	if err := svc.UpdateAdmin(context.Background(), 2, UpdateAdminInput{Role: &newRole, ActorID: 1}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, _ := repo.FindByID(2)
	if got.Role != RoleUser {
		t.Fatalf("role not updated: %+v", got)
	}
	if !got.IsActive || got.Username != "officer" {
		t.Fatalf("untouched fields must survive: %+v", got)
	}

	badRole := "overlord"
	if err := svc.UpdateAdmin(context.Background(), 2, UpdateAdminInput{Role: &badRole}); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected invalid role, got %v", err)
	}

	newPassword := "rotated-pass"
	oldHash := got.PasswordHash
	if err := svc.UpdateAdmin(context.Background(), 2, UpdateAdminInput{Password: &newPassword}); err != nil {
		t.Fatalf("password update failed: %v", err)
	}
	got, _ = repo.FindByID(2)
	if got.PasswordHash == oldHash || got.PasswordHash == newPassword {
		t.Fatalf("password must be re-hashed on update")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte(newPassword)); err != nil {
		t.Fatalf("new password does not verify: %v", err)
	}
}

func TestSeedSuperAdmin(t *testing.T) {
	repo := &fakeAdminRepo{}

	if err := SeedSuperAdmin(repo, "root", "bootstrapme"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if len(repo.admins) != 1 || repo.admins[0].Role != RoleSuper || !repo.admins[0].IsActive {
		t.Fatalf("unexpected seeded admin: %+v", repo.admins)
	}

	// Idempotent on a populated table.
	if err := SeedSuperAdmin(repo, "root", "bootstrapme"); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	if len(repo.admins) != 1 {
		t.Fatalf("seed must not duplicate, got %d admins", len(repo.admins))
	}

	// Missing credentials skip quietly.
	empty := &fakeAdminRepo{}
	if err := SeedSuperAdmin(empty, "", ""); err != nil {
		t.Fatalf("seed without credentials must not fail: %v", err)
	}
	if len(empty.admins) != 0 {
		t.Fatalf("seed without credentials must not create anything")
	}
}
