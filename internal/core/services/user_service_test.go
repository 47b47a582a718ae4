package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fintrackhq/fintrack/internal/apperrors"
	"github.com/fintrackhq/fintrack/internal/core/domain"
	portssvc "github.com/fintrackhq/fintrack/internal/core/ports/services"
	"github.com/fintrackhq/fintrack/internal/core/services"
	"github.com/fintrackhq/fintrack/internal/dto"
	"github.com/fintrackhq/fintrack/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo     *MockUserRepository
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	categorySvc := services.NewCategoryService(suite.mockCategoryRepo)
	suite.service = services.NewUserService(suite.mockUserRepo, services.WithCategorySeeder(categorySvc))
}

// --- CreateUser Tests ---
func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Username: "testuser",
		Password: "password123",
		Name:     "Test User",
		Email:    "test@example.com",
	}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "testuser").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Username == "testuser" && user.Name == "Test User" &&
			user.PasswordHash != "" && utils.CheckPasswordHash("password123", user.PasswordHash)
	})).Return(nil).Once()

	var seededFor string
	suite.mockCategoryRepo.SaveCategoriesFn = func(ctx context.Context, categories []domain.Category) error {
		suite.Len(categories, len(domain.DefaultCategories))
		if len(categories) > 0 {
			seededFor = categories[0].UserID
		}
		return nil
	}

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.Equal("testuser", user.Username)
	suite.NotEqual("password123", user.PasswordHash)
	suite.Equal(user.UserID, seededFor)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Username: "taken"}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "taken").Return(existing, nil).Once()

	user, err := suite.service.CreateUser(ctx, dto.RegisterRequest{
		Username: "taken",
		Password: "password123",
		Name:     "Someone",
	})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_SeedFailureDoesNotFailRegistration() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "testuser").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()
	suite.mockCategoryRepo.SaveCategoriesFn = func(ctx context.Context, categories []domain.Category) error {
		return assert.AnError
	}

	user, err := suite.service.CreateUser(ctx, dto.RegisterRequest{
		Username: "testuser",
		Password: "password123",
		Name:     "Test User",
	})

	suite.Require().NoError(err)
	suite.NotNil(user)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- CreateOAuthUser Tests ---
func (suite *UserServiceTestSuite) TestCreateOAuthUser_ExistingUserReturned() {
	ctx := context.Background()
	info := domain.GoogleUserInfo{ID: "sub-123", Email: "g@example.com", Name: "G User"}
	existing := &domain.User{UserID: uuid.NewString(), Username: "google:sub-123"}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "google:sub-123").Return(existing, nil).Once()

	user, err := suite.service.CreateOAuthUser(ctx, info)

	suite.Require().NoError(err)
	suite.Equal(existing, user)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateOAuthUser_NewUserCreated() {
	ctx := context.Background()
	info := domain.GoogleUserInfo{ID: "sub-456", Email: "new@example.com", Name: "New User"}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "google:sub-456").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Username == "google:sub-456" && user.Email == "new@example.com" && user.PasswordHash == ""
	})).Return(nil).Once()
	suite.mockCategoryRepo.SaveCategoriesFn = func(ctx context.Context, categories []domain.Category) error {
		return nil
	}

	user, err := suite.service.CreateOAuthUser(ctx, info)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal("New User", user.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- GetUserByID Tests ---
func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- UpdateUser Tests ---
func (suite *UserServiceTestSuite) TestUpdateUser_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	existing := &domain.User{
		UserID: userID,
		Name:   "Original Name",
		AuditFields: domain.AuditFields{
			LastUpdatedAt: time.Now().Add(-time.Hour),
		},
	}
	newName := "Updated Name"

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(existing, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.UserID == userID && user.Name == newName && user.LastUpdatedBy == userID
	})).Return(nil).Once()

	user, err := suite.service.UpdateUser(ctx, userID, dto.UpdateUserRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal(newName, user.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- Refresh token state Tests ---
func (suite *UserServiceTestSuite) TestStoreRefreshTokenHash_RepoError() {
	ctx := context.Background()
	userID := uuid.NewString()
	expiry := time.Now().Add(24 * time.Hour)
	expectedErr := assert.AnError

	suite.mockUserRepo.On("UpdateRefreshToken", ctx, userID, "hash", expiry).Return(expectedErr).Once()

	err := suite.service.StoreRefreshTokenHash(ctx, userID, "hash", expiry)

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
	suite.Contains(err.Error(), "failed to store refresh token")
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestClearRefreshToken_Success() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("ClearRefreshToken", ctx, userID).Return(nil).Once()

	err := suite.service.ClearRefreshToken(ctx, userID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- DeleteUser Tests ---
func (suite *UserServiceTestSuite) TestDeleteUser_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	existing := &domain.User{UserID: userID}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(existing, nil).Once()
	suite.mockUserRepo.On("MarkUserDeleted", ctx, userID, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteUser(ctx, userID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
