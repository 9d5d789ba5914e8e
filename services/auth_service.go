package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"vph-backend/apperrors"
	"vph-backend/middleware"
	"vph-backend/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	DB       *gorm.DB
	Secret   string
	TokenTTL time.Duration
	Log      *zap.Logger
}

func NewAuthService(db *gorm.DB, secret string, ttl time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{DB: db, Secret: secret, TokenTTL: ttl, Log: log}
}

// Session is the login result handed to the client.
type Session struct {
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expires_at"`
	User      models.User          `json:"user"`
	Profile   *models.StaffProfile `json:"profile,omitempty"`
	Roles     []string             `json:"roles"`
}

// Login verifies credentials and issues a signed access token. Disabled
// accounts cannot log in regardless of password.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	var user models.User
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.NewPersistence("load user", err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	roles, err := s.rolesFor(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(s.TokenTTL)
	claims := middleware.Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserUID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.Secret))
	if err != nil {
		return nil, err
	}

	var profile models.StaffProfile
	session := &Session{Token: token, ExpiresAt: expiresAt, User: user, Roles: roles}
	if err := s.DB.WithContext(ctx).Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
		session.Profile = &profile
	}

	s.Log.Info("login", zap.String("username", user.Username))
	return session, nil
}

// Whoami resolves the identity's profile and role set for /auth/me.
func (s *AuthService) Whoami(ctx context.Context, userID uint) (*Session, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewPersistence("load user", err)
	}

	roles, err := s.rolesFor(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	session := &Session{User: user, Roles: roles}
	var profile models.StaffProfile
	if err := s.DB.WithContext(ctx).Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
		session.Profile = &profile
	}
	return session, nil
}

func (s *AuthService) rolesFor(ctx context.Context, userID uint) ([]string, error) {
	var assignments []models.RoleAssignment
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&assignments).Error; err != nil {
		return nil, apperrors.NewPersistence("load roles", err)
	}
	roles := make([]string, 0, len(assignments))
	for _, a := range assignments {
		roles = append(roles, a.Role)
	}
	return roles, nil
}
