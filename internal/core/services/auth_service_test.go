package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fintrackhq/fintrack/internal/apperrors"
	"github.com/fintrackhq/fintrack/internal/core/domain"
	portssvc "github.com/fintrackhq/fintrack/internal/core/ports/services"
	"github.com/fintrackhq/fintrack/internal/core/services"
	"github.com/fintrackhq/fintrack/internal/utils"
	"github.com/fintrackhq/fintrack/pkg/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type TokenServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.TokenSvcFacade
	cfg          *config.Config
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.cfg = &config.Config{
		JWTSecret:                  "test-secret-key",
		JWTExpiryDuration:          15 * time.Minute,
		JWTIssuer:                  "fintrack-test",
		RefreshTokenExpiryDuration: 24 * time.Hour,
	}
	userSvc := services.NewUserService(suite.mockUserRepo)
	suite.service = services.NewTokenService(suite.cfg, userSvc)
}

// --- GenerateAccessToken Tests ---
func (suite *TokenServiceTestSuite) TestGenerateAccessToken_Success() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString()}

	token, expiry, err := suite.service.GenerateAccessToken(ctx, user)

	suite.Require().NoError(err)
	suite.NotEmpty(token)
	suite.WithinDuration(time.Now().Add(suite.cfg.JWTExpiryDuration), expiry, 5*time.Second)

	claims, err := utils.ParseAndValidateJWT(token, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal(user.UserID, claims.Subject)
	suite.Equal(suite.cfg.JWTIssuer, claims.Issuer)
}

// --- GenerateRefreshToken Tests ---
func (suite *TokenServiceTestSuite) TestGenerateRefreshToken_Opaque() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString()}

	token, expiry, err := suite.service.GenerateRefreshToken(ctx, user)

	suite.Require().NoError(err)
	// 32 random bytes hex encoded.
	suite.Len(token, 64)
	suite.WithinDuration(time.Now().Add(suite.cfg.RefreshTokenExpiryDuration), expiry, 5*time.Second)

	other, _, err := suite.service.GenerateRefreshToken(ctx, user)
	suite.Require().NoError(err)
	suite.NotEqual(token, other)
}

// --- ValidateAndParseRefreshToken Tests ---
func (suite *TokenServiceTestSuite) TestValidateRefreshToken_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	rawToken := "raw-refresh-token"
	expiry := time.Now().Add(time.Hour)
	user := &domain.User{
		UserID:                 userID,
		RefreshTokenHash:       utils.HashRefreshToken(rawToken),
		RefreshTokenExpiryTime: &expiry,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()

	result, err := suite.service.ValidateAndParseRefreshToken(ctx, userID, rawToken)

	suite.Require().NoError(err)
	suite.Equal(user, result)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_WrongToken() {
	ctx := context.Background()
	userID := uuid.NewString()
	expiry := time.Now().Add(time.Hour)
	user := &domain.User{
		UserID:                 userID,
		RefreshTokenHash:       utils.HashRefreshToken("the-real-token"),
		RefreshTokenExpiryTime: &expiry,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()

	result, err := suite.service.ValidateAndParseRefreshToken(ctx, userID, "a-different-token")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_Expired() {
	ctx := context.Background()
	userID := uuid.NewString()
	rawToken := "raw-refresh-token"
	expiry := time.Now().Add(-time.Minute)
	user := &domain.User{
		UserID:                 userID,
		RefreshTokenHash:       utils.HashRefreshToken(rawToken),
		RefreshTokenExpiryTime: &expiry,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()

	result, err := suite.service.ValidateAndParseRefreshToken(ctx, userID, rawToken)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrRefreshTokenExpired)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_NoStoredToken() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()

	result, err := suite.service.ValidateAndParseRefreshToken(ctx, userID, "anything")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_UnknownUser() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.ValidateAndParseRefreshToken(ctx, userID, "anything")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestTokenService(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
