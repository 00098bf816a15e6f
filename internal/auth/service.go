package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/esepkerala/registration-backend/config"
	"github.com/esepkerala/registration-backend/internal/auditlog"
	"github.com/esepkerala/registration-backend/internal/realtime"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountInactive    = errors.New("your account is inactive")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUsernameTaken      = errors.New("username is already taken")
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LoginInput struct {
	Username string
	Password string
	IP       string
}

type CreateAdminInput struct {
	Username string
	Password string
	Role     string
	ActorID  uint
	IP       string
}

// UpdateAdminInput is a sparse patch; nil fields are left untouched.
type UpdateAdminInput struct {
	Password *string
	Role     *string
	IsActive *bool
	ActorID  uint
	IP       string
}

type Service interface {
	Login(ctx context.Context, in LoginInput) (*TokenPair, *Admin, error)
	Refresh(refreshToken string) (string, error)
	GetAdminByID(id uint) (Admin, error)
	ListAdmins() ([]Admin, error)
	CreateAdmin(ctx context.Context, in CreateAdminInput) (*Admin, error)
	UpdateAdmin(ctx context.Context, id uint, in UpdateAdminInput) error
}

type Snapshot interface {
	RefreshAdmins() error
}

type Publisher interface {
	Publish(ctx context.Context, table string) error
}

type service struct {
	repo          Repository
	snap          Snapshot
	bus           Publisher
	audit         auditlog.Service
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(r Repository, snap Snapshot, bus Publisher, audit auditlog.Service, cfg *config.Config) Service {
	return &service{
		repo:          r,
		snap:          snap,
		bus:           bus,
		audit:         audit,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
		refreshTTL:    time.Duration(cfg.JWTRefreshTTLHours) * time.Hour,
	}
}

func (s *service) Login(ctx context.Context, in LoginInput) (*TokenPair, *Admin, error) {
	username := strings.TrimSpace(in.Username)

	admin, err := s.repo.FindByUsername(username)
	if err != nil {
		s.audit.LogAction(ctx, nil, "ADMIN_LOGIN_FAILED", map[string]interface{}{
			"username": username,
			"reason":   "unknown username",
		}, in.IP, "failure")
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)); err != nil {
		s.audit.LogAction(ctx, &admin.ID, "ADMIN_LOGIN_FAILED", map[string]interface{}{
			"username": username,
			"reason":   "wrong password",
		}, in.IP, "failure")
		return nil, nil, ErrInvalidCredentials
	}

	if !admin.IsActive {
		s.audit.LogAction(ctx, &admin.ID, "ADMIN_LOGIN_FAILED", map[string]interface{}{
			"username": username,
			"reason":   "inactive account",
		}, in.IP, "failure")
		return nil, nil, ErrAccountInactive
	}

	accessToken, err := s.generateAccessToken(admin)
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := s.generateRefreshToken(admin)
	if err != nil {
		return nil, nil, err
	}

	s.audit.LogAction(ctx, &admin.ID, "ADMIN_LOGIN", map[string]interface{}{
		"username": username,
		"role":     admin.Role,
	}, in.IP, "success")

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, admin, nil
}

func (s *service) generateAccessToken(admin *Admin) (string, error) {
	claims := jwt.MapClaims{
		"admin_id": admin.ID,
		"role":     admin.Role,
		"exp":      time.Now().Add(s.accessTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.accessSecret))
}

func (s *service) generateRefreshToken(admin *Admin) (string, error) {
	claims := jwt.MapClaims{
		"admin_id": admin.ID,
		"exp":      time.Now().Add(s.refreshTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.refreshSecret))
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *service) Refresh(refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.refreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	idFloat, ok := claims["admin_id"].(float64)
	if !ok {
		return "", errors.New("admin_id missing in token")
	}

	admin, err := s.repo.FindByID(uint(idFloat))
	if err != nil {
		return "", errors.New("admin not found")
	}
	if !admin.IsActive {
		return "", ErrAccountInactive
	}

	return s.generateAccessToken(&admin)
}

func (s *service) GetAdminByID(id uint) (Admin, error) {
	return s.repo.FindByID(id)
}

func (s *service) ListAdmins() ([]Admin, error) {
	return s.repo.GetAll()
}

func (s *service) CreateAdmin(ctx context.Context, in CreateAdminInput) (*Admin, error) {
	username := strings.TrimSpace(in.Username)
	role := strings.ToLower(strings.TrimSpace(in.Role))

	if !IsValidRole(role) {
		return nil, ErrInvalidRole
	}
	if existing, err := s.repo.FindByUsername(username); err == nil && existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &Admin{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.Create(admin); err != nil {
		return nil, err
	}

	s.audit.LogAction(ctx, &in.ActorID, "ADMIN_CREATED", map[string]interface{}{
		"username": username,
		"role":     role,
	}, in.IP, "success")

	s.notifyChanged(ctx)
	return admin, nil
}

func (s *service) UpdateAdmin(ctx context.Context, id uint, in UpdateAdminInput) error {
	updates := map[string]interface{}{}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		updates["password_hash"] = string(hash)
	}
	if in.Role != nil {
		role := strings.ToLower(strings.TrimSpace(*in.Role))
		if !IsValidRole(role) {
			return ErrInvalidRole
		}
		updates["role"] = role
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}

	if err := s.repo.Update(id, updates); err != nil {
		return err
	}

	s.audit.LogAction(ctx, &in.ActorID, "ADMIN_UPDATED", map[string]interface{}{
		"admin_id":         id,
		"password_changed": in.Password != nil,
	}, in.IP, "success")

	s.notifyChanged(ctx)
	return nil
}

func (s *service) notifyChanged(ctx context.Context) {
	if err := s.snap.RefreshAdmins(); err != nil {
		log.Printf("⚠️ admin snapshot refresh failed: %v", err)
	}
	if err := s.bus.Publish(ctx, realtime.TableAdmins); err != nil {
		log.Printf("⚠️ failed to publish admins change: %v", err)
	}
}
