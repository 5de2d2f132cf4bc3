package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"simple-social/internal/entity"
	"simple-social/internal/repo/tokenstore"
	"simple-social/pkg/jwt"
	"simple-social/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func newAuthUseCase(userRepo *MockUserRepository, mailer *MockMailer) AuthUseCase {
	return NewAuthUseCase(
		userRepo,
		jwt.NewService("test-secret-key"),
		tokenstore.New(nil),
		mailer,
		logger.New(),
		"http://localhost:8080",
	)
}

func notFoundErr(what string) error {
	return fmt.Errorf("%w: %s", entity.ErrNotFound, what)
}

func TestRegister(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUseCase(userRepo, new(MockMailer))

	userRepo.On("GetByEmail", "new@example.com").Return(nil, notFoundErr("user"))
	userRepo.On("Create", mock.Anything).Run(func(args mock.Arguments) {
		args.Get(0).(*entity.User).ID = "user-1"
	}).Return(nil)

	user, err := uc.Register("new@example.com", "password123")

	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsVerified)
	assert.False(t, user.IsSuperuser)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("password123")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUseCase(userRepo, new(MockMailer))

	userRepo.On("GetByEmail", "taken@example.com").Return(&entity.User{ID: "user-1"}, nil)

	_, err := uc.Register("taken@example.com", "password123")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrConflict))
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestLogin(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	userRepo := new(MockUserRepository)
	uc := newAuthUseCase(userRepo, new(MockMailer))

	userRepo.On("GetByEmail", "a@example.com").Return(&entity.User{
		ID:             "user-1",
		Email:          "a@example.com",
		HashedPassword: string(hashed),
		IsActive:       true,
	}, nil)

	token, err := uc.Login("a@example.com", "password123")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwt.NewService("test-secret-key").ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	userRepo := new(MockUserRepository)
	uc := newAuthUseCase(userRepo, new(MockMailer))

	userRepo.On("GetByEmail", "a@example.com").Return(&entity.User{
		ID:             "user-1",
		HashedPassword: string(hashed),
		IsActive:       true,
	}, nil)

	_, err := uc.Login("a@example.com", "wrong")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrInvalidCredentials))
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUseCase(userRepo, new(MockMailer))

	userRepo.On("GetByEmail", "nobody@example.com").Return(nil, notFoundErr("user"))

	_, err := uc.Login("nobody@example.com", "password123")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrInvalidCredentials))
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	userRepo := new(MockUserRepository)
	uc := newAuthUseCase(userRepo, new(MockMailer))

	userRepo.On("GetByEmail", "a@example.com").Return(&entity.User{
		ID:             "user-1",
		HashedPassword: string(hashed),
		IsActive:       false,
	}, nil)

	_, err := uc.Login("a@example.com", "password123")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrInvalidCredentials))
}

func TestUpdateUser_ChangesEmailAndPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUseCase(userRepo, new(MockMailer))

	userRepo.On("GetByID", "user-1").Return(&entity.User{
		ID:    "user-1",
		Email: "old@example.com",
	}, nil)
	userRepo.On("GetByEmail", "new@example.com").Return(nil, notFoundErr("user"))
	userRepo.On("Update", mock.Anything).Return(nil)

	newEmail := "new@example.com"
	newPassword := "betterpassword"
	user, err := uc.UpdateUser("user-1", &newEmail, &newPassword)

	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("betterpassword")))
}

func TestUpdateUser_EmailTaken(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUseCase(userRepo, new(MockMailer))

	userRepo.On("GetByID", "user-1").Return(&entity.User{ID: "user-1", Email: "old@example.com"}, nil)
	userRepo.On("GetByEmail", "taken@example.com").Return(&entity.User{ID: "user-2"}, nil)

	taken := "taken@example.com"
	_, err := uc.UpdateUser("user-1", &taken, nil)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrConflict))
	userRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestPasswordResetFlow(t *testing.T) {
	userRepo := new(MockUserRepository)
	mailer := new(MockMailer)
	uc := newAuthUseCase(userRepo, mailer)
	ctx := context.Background()

	userRepo.On("GetByEmail", "a@example.com").Return(&entity.User{
		ID:    "user-1",
		Email: "a@example.com",
	}, nil)

	mailer.On("Send", "a@example.com", mock.Anything, mock.Anything).Return(nil)

	uc.RequestPasswordReset(ctx, "a@example.com")

	mailer.AssertCalled(t, "Send", "a@example.com", mock.Anything, mock.Anything)
}

func TestResetPassword_InvalidToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUseCase(userRepo, new(MockMailer))

	err := uc.ResetPassword(context.Background(), "bogus-token", "newpassword")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrInvalidInput))
}

func TestVerifyEmail_InvalidToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUseCase(userRepo, new(MockMailer))

	_, err := uc.VerifyEmail(context.Background(), "bogus-token")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrInvalidInput))
}

func TestRequestPasswordReset_UnknownEmail_NoMail(t *testing.T) {
	userRepo := new(MockUserRepository)
	mailer := new(MockMailer)
	uc := newAuthUseCase(userRepo, mailer)

	userRepo.On("GetByEmail", "nobody@example.com").Return(nil, notFoundErr("user"))

	uc.RequestPasswordReset(context.Background(), "nobody@example.com")

	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}
