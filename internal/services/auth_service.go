package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"pcstore/internal/logging"
	"pcstore/internal/models"
	"pcstore/internal/repositories"
)

// ErrInvalidCredentials is returned for any failed login, without revealing
// whether the username exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles business logic for admin authentication and authorization.
type AuthService struct {
	adminRepo  repositories.AdminRepository
	validate   *validator.Validate
	jwtSecret  []byte
	tokenDurat time.Duration
	log        *logrus.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(adminRepo repositories.AdminRepository, jwtSecret string, logger *logrus.Logger) *AuthService {
	return &AuthService{
		adminRepo:  adminRepo,
		validate:   newValidator(),
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
		log:        logging.OrDiscard(logger),
	}
}

// CreateAdmin hashes the password and stores a new admin account.
func (s *AuthService) CreateAdmin(ctx context.Context, username, password string) (*models.Admin, error) {
	admin := &models.Admin{Username: strings.TrimSpace(username), Password: password}
	if err := s.validate.Struct(admin); err != nil {
		return nil, validationError(err)
	}

	if existing, err := s.adminRepo.GetByUsername(ctx, admin.Username); err == nil && existing != nil {
		return nil, &models.Error{
			Kind:    models.KindDuplicateID,
			Field:   "username",
			Message: fmt.Sprintf("username '%s' already taken", admin.Username),
		}
	} else if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	admin.Password = string(hashedPassword)

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	s.log.Infof("Created admin account %s", admin.Username)
	return admin, nil
}

// EnsureAdmin creates the bootstrap admin unless it already exists.
// An empty password disables the bootstrap.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	if password == "" {
		s.log.Debug("No bootstrap admin password configured, skipping")
		return nil
	}
	if _, err := s.adminRepo.GetByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, models.ErrNotFound) {
		return err
	}
	_, err := s.CreateAdmin(ctx, username, password)
	return err
}

// Login authenticates an admin and returns a signed JWT.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		s.log.Warnf("Login failed for %s: %v", username, err)
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		s.log.Warnf("Login failed for %s: wrong password", username)
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": admin.ID,
		"username": admin.Username,
		"exp":      now.Add(s.tokenDurat).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
