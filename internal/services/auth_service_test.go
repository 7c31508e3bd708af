package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pcstore/internal/models"
	"pcstore/internal/services"
)

const testJWTSecret = "test_jwt_secret"

func adminNotFound(username string) error {
	return &models.Error{Kind: models.KindNotFound, Field: "username", Message: fmt.Sprintf("admin with username %s not found", username)}
}

func TestAuthService_CreateAdmin(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, nil)
	ctx := context.Background()

	mockRepo.On("GetByUsername", mock.Anything, "root").Return(nil, adminNotFound("root")).Once()
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *models.Admin) bool {
		return a.Username == "root" && bcrypt.CompareHashAndPassword([]byte(a.Password), []byte("password123")) == nil
	})).Return(nil).Once()

	admin, err := authService.CreateAdmin(ctx, "root", "password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", admin.Password)
	mockRepo.AssertExpectations(t)

	// Username already taken
	mockRepo.On("GetByUsername", mock.Anything, "root").Return(&models.Admin{ID: "1", Username: "root"}, nil).Once()
	_, err = authService.CreateAdmin(ctx, "root", "password123")
	assert.ErrorIs(t, err, models.ErrDuplicateID)
	assert.Contains(t, err.Error(), "username 'root' already taken")

	// Too short password
	_, err = authService.CreateAdmin(ctx, "root", "123")
	assert.ErrorIs(t, err, models.ErrValidation)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, nil)
	ctx := context.Background()

	assert.NoError(t, authService.EnsureAdmin(ctx, "admin", ""))
	mockRepo.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)

	mockRepo.On("GetByUsername", mock.Anything, "admin").Return(&models.Admin{ID: "1", Username: "admin"}, nil).Once()
	assert.NoError(t, authService.EnsureAdmin(ctx, "admin", "secret123"))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	mockRepo.On("GetByUsername", mock.Anything, "admin").Return(nil, adminNotFound("admin")).Twice()
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	assert.NoError(t, authService.EnsureAdmin(ctx, "admin", "secret123"))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, nil)
	ctx := context.Background()

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	admin := &models.Admin{ID: "admin-123", Username: "testadmin", Password: string(hashedPassword)}

	mockRepo.On("GetByUsername", mock.Anything, admin.Username).Return(admin, nil).Once()
	token, err := authService.Login(ctx, "testadmin", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, admin.ID, claims["admin_id"])
	assert.Equal(t, admin.Username, claims["username"])

	// Wrong password
	mockRepo.On("GetByUsername", mock.Anything, admin.Username).Return(admin, nil).Once()
	_, err = authService.Login(ctx, "testadmin", "wrongpassword")
	assert.True(t, errors.Is(err, services.ErrInvalidCredentials))

	// Unknown admin
	mockRepo.On("GetByUsername", mock.Anything, "nobody").Return(nil, adminNotFound("nobody")).Once()
	_, err = authService.Login(ctx, "nobody", "password123")
	assert.True(t, errors.Is(err, services.ErrInvalidCredentials))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := services.NewAuthService(new(MockAdminRepository), testJWTSecret, nil)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": "admin-123",
		"username": "testadmin",
		"exp":      jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "admin-123", claims["admin_id"])

	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	otherSecret, _ := token.SignedString([]byte("another_secret"))
	_, err = authService.ValidateToken(otherSecret)
	assert.Error(t, err)

	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": "admin-123",
		"exp":      jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}
