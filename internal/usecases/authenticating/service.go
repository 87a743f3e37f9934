package authenticating

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/property-leads-api/infrastructure/repository"
	"github.com/vfg2006/property-leads-api/internal/config"
	"github.com/vfg2006/property-leads-api/internal/domain"
	"github.com/vfg2006/property-leads-api/pkg/apiErrors"
	"github.com/vfg2006/property-leads-api/pkg/log"
	"github.com/vfg2006/property-leads-api/pkg/validation"
	"golang.org/x/crypto/bcrypt"
)

const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars  = "0123456789"
	specialChars = "!@#$%^&*()-_=+[]{}|;:,.<>?"
)

type LoginResult struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	User      *domain.AdminUser `json:"user"`
}

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	CreateAdmin(ctx context.Context, req *domain.CreateAdminRequest) (*domain.AdminUser, error)
	ListAdmins(ctx context.Context) ([]*domain.AdminUser, error)
	GetProfile(ctx context.Context, userID int64) (*domain.AdminUser, error)
	UpdateAdmin(ctx context.Context, req *domain.UpdateAdminRequest) (*domain.AdminUser, error)
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
	ValidatePasswordStrength(password string) error
}

type Service struct {
	userRepo repository.AdminUserRepository
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func NewService(userRepo repository.AdminUserRepository, cfg *config.Config) Authenticator {
	return &Service{
		userRepo: userRepo,
		secret:   []byte(cfg.SecretKey),
		tokenTTL: time.Duration(cfg.Auth.TokenTTLHours) * time.Hour,
		now:      time.Now,
	}
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "")
	}
	if err != nil {
		return nil, NewAuthError(fmt.Errorf("%w: %v", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, "")
	}

	if !user.Active {
		return nil, NewUserAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, user.ID, "account disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "")
	}

	now := s.now()
	token, expiresAt, err := s.generateJWT(user, now)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "failed to sign token")
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		log.ForContext(ctx).WithError(err).WithField("user_id", user.ID).Warn("failed to record last login")
	} else {
		user.LastLoginAt = &now
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

func (s *Service) generateJWT(user *domain.AdminUser, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(s.tokenTTL)
	claims := domain.Claims{
		UserID:     user.ID,
		UserName:   user.Name,
		UserEmail:  user.Email,
		UserRoleID: user.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
	}
	if err != nil {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	return claims, nil
}

func (s *Service) CreateAdmin(ctx context.Context, req *domain.CreateAdminRequest) (*domain.AdminUser, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "name, email and password are required")
	}

	email := domain.NormalizeEmail(req.Email)
	if !validation.Email(email) {
		return nil, NewAuthError(ErrInvalidEmail, apiErrors.ErrInvalidEmail, email)
	}

	if err := s.ValidatePasswordStrength(req.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	roleID := req.RoleID
	if roleID == 0 {
		roleID = domain.RoleAgent
	}

	user, err := s.userRepo.Create(ctx, &domain.AdminUser{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashedPassword),
		RoleID:       roleID,
		Active:       true,
	})
	if errors.Is(err, repository.ErrConflict) {
		return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "email already registered")
	}
	if err != nil {
		return nil, NewAuthError(fmt.Errorf("%w: %v", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, "")
	}

	return user, nil
}

func (s *Service) ListAdmins(ctx context.Context) ([]*domain.AdminUser, error) {
	return s.userRepo.List(ctx)
}

func (s *Service) GetProfile(ctx context.Context, userID int64) (*domain.AdminUser, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "")
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) UpdateAdmin(ctx context.Context, req *domain.UpdateAdminRequest) (*domain.AdminUser, error) {
	user, err := s.GetProfile(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.RoleID != nil {
		user.RoleID = *req.RoleID
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ChangePassword checks the current password before storing the new hash.
func (s *Service) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return NewUserAuthError(ErrWrongPassword, apiErrors.ErrInvalidCredentials, userID, "")
	}

	if currentPassword == newPassword {
		return NewUserAuthError(ErrSamePassword, apiErrors.ErrWeakPassword, userID, "")
	}

	if err := s.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, userID, string(hashedPassword))
}

// ValidatePasswordStrength requires at least 8 characters mixing upper and
// lower case letters, digits and symbols.
func (s *Service) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return NewAuthError(ErrWeakPassword, apiErrors.ErrWeakPassword, "password must have at least 8 characters")
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, char := range password {
		switch {
		case strings.ContainsRune(lowerChars, char):
			hasLower = true
		case strings.ContainsRune(upperChars, char):
			hasUpper = true
		case strings.ContainsRune(numberChars, char):
			hasNumber = true
		case strings.ContainsRune(specialChars, char):
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return NewAuthError(ErrWeakPassword, apiErrors.ErrWeakPassword, "password must contain an upper case letter")
	case !hasLower:
		return NewAuthError(ErrWeakPassword, apiErrors.ErrWeakPassword, "password must contain a lower case letter")
	case !hasNumber:
		return NewAuthError(ErrWeakPassword, apiErrors.ErrWeakPassword, "password must contain a number")
	case !hasSpecial:
		return NewAuthError(ErrWeakPassword, apiErrors.ErrWeakPassword, "password must contain a special character")
	}

	return nil
}
