package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"minevest-backend/internal/domain"
	"minevest-backend/internal/middleware"
	"minevest-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service handles investor accounts and bearer tokens. Tokens are opaque
// uuids stored in Redis with a TTL; there is no process-wide token state.
type Service struct {
	DB       *gorm.DB
	Rdb      *redis.Client
	TokenTTL time.Duration
}

type RegisterInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an investor account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.Investor, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !validation.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !validation.IsValidFullName(in.FullName) {
		return nil, ErrInvalidFullName
	}
	if !validation.IsValidPassword(in.Password) {
		return nil, ErrWeakPassword
	}

	var existing domain.Investor
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	investor := &domain.Investor{
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.DB.WithContext(ctx).Create(investor).Error; err != nil {
		return nil, err
	}
	return investor, nil
}

// Login verifies credentials and issues a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.Investor, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, ErrEmailPasswordRequired
	}
	var investor domain.Investor
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&investor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if investor.PasswordHash == "" {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(investor.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(ctx, &investor)
	if err != nil {
		return "", nil, err
	}
	return token, &investor, nil
}

// IssueToken stores investor claims in Redis under a fresh opaque token.
func (s *Service) IssueToken(ctx context.Context, investor *domain.Investor) (string, error) {
	claims := middleware.InvestorClaims{
		InvestorID: investor.InvestorID.String(),
		FullName:   investor.FullName,
		Email:      investor.Email,
		Role:       investor.Role,
	}
	b, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	token := uuid.New().String()
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if err := s.Rdb.Set(ctx, middleware.TokenRedisPrefix+token, b, ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// RevokeToken deletes the token so the bearer is logged out everywhere.
func (s *Service) RevokeToken(ctx context.Context, token string) error {
	if token == "" {
		return ErrNotAuthenticated
	}
	return s.Rdb.Del(ctx, middleware.TokenRedisPrefix+token).Err()
}
