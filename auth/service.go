package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/HimanshuNaik19/Blog-Platform/config"
	"github.com/HimanshuNaik19/Blog-Platform/models"
	"github.com/HimanshuNaik19/Blog-Platform/utils"
)

var (
	// ErrInvalidCredentials covers both unknown accounts and wrong passwords,
	// deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrUsernameTaken      = errors.New("auth: username already exists")
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrInvalidToken       = errors.New("auth: invalid or revoked token")
)

// Service is the session/identity provider: it registers accounts, exchanges
// credentials for bearer tokens and resolves tokens back to user records.
type Service struct {
	db     *gorm.DB
	tokTTL time.Duration
}

// NewService wires the provider to the user store.
func NewService(db *gorm.DB) *Service {
	return &Service{
		db:     db,
		tokTTL: time.Duration(config.Get().JWTTTLHours) * time.Hour,
	}
}

// Register creates an account and returns a fresh session token. New accounts
// get the reader role unless the username is configured as a bootstrap admin.
func (s *Service) Register(ctx context.Context, username, email, password string) (string, *models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return "", nil, ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, fmt.Errorf("check username: %w", err)
	}
	err = s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return "", nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	role := models.RoleUser
	if config.IsAdminUsername(username) {
		role = models.RoleAdmin
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// A concurrent registration can win the unique index between the
		// pre-check and the insert; report the same conflict the pre-check
		// would have.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var count int64
			s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count)
			if count > 0 {
				return "", nil, ErrUsernameTaken
			}
			return "", nil, ErrEmailTaken
		}
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Role, s.tokTTL)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, &user, nil
}

// Login exchanges email and password for a session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("load user: %w", err)
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Role, s.tokTTL)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, &user, nil
}

// Verify resolves a bearer token to its live user record. Revoked tokens and
// tokens for deleted accounts both come back as ErrInvalidToken.
func (s *Service) Verify(ctx context.Context, token string) (*models.User, error) {
	if utils.IsTokenBlacklisted(token) {
		return nil, ErrInvalidToken
	}
	claims, err := utils.ParseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

// Logout revokes the token until its natural expiration.
func (s *Service) Logout(token string) {
	claims, err := utils.ParseToken(token)
	if err != nil {
		return
	}
	utils.BlacklistToken(token, claims.ExpiresAt.Time)
}

// SetRole updates a user's role. Role management is admin-only; the handler
// enforces that before calling here.
func (s *Service) SetRole(ctx context.Context, userID, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("auth: unknown role %q", role)
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	user.Role = role
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	return &user, nil
}
