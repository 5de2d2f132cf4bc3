package usecase

import (
	"context"
	"fmt"
	"time"

	"simple-social/internal/entity"
	"simple-social/internal/repo/persistent"
	"simple-social/internal/repo/tokenstore"
	"simple-social/pkg/jwt"
	"simple-social/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

const (
	resetTokenTTL  = 1 * time.Hour
	verifyTokenTTL = 24 * time.Hour
)

// Mailer is satisfied by pkg/mailer. Delivery failures are logged, not
// surfaced: the forgot-password and verification endpoints never reveal
// whether an account exists.
type Mailer interface {
	Send(to, subject, body string) error
}

type AuthUseCase interface {
	Register(email, password string) (*entity.User, error)
	Login(email, password string) (string, error)
	GetUser(userID string) (*entity.User, error)
	UpdateUser(userID string, email, password *string) (*entity.User, error)
	RequestPasswordReset(ctx context.Context, email string)
	ResetPassword(ctx context.Context, token, password string) error
	RequestVerifyToken(ctx context.Context, email string)
	VerifyEmail(ctx context.Context, token string) (*entity.User, error)
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	tokens     *tokenstore.Store
	mailer     Mailer
	logger     *logger.Logger
	baseURL    string
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	tokens *tokenstore.Store,
	mailer Mailer,
	logger *logger.Logger,
	baseURL string,
) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokens:     tokens,
		mailer:     mailer,
		logger:     logger,
		baseURL:    baseURL,
	}
}

func (uc *authUseCase) Register(email, password string) (*entity.User, error) {
	if _, err := uc.userRepo.GetByEmail(email); err == nil {
		return nil, fmt.Errorf("%w: user with this email", entity.ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to process registration")
	}

	user := &entity.User{
		Email:          email,
		HashedPassword: string(hashedPassword),
		IsActive:       true,
		IsSuperuser:    false,
		IsVerified:     false,
	}

	if err := uc.userRepo.Create(user); err != nil {
		uc.logger.Error("Failed to create user: %v", err)
		return nil, err
	}

	return user, nil
}

func (uc *authUseCase) Login(email, password string) (string, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return "", fmt.Errorf("%w: bad email or password", entity.ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", fmt.Errorf("%w: bad email or password", entity.ErrInvalidCredentials)
	}

	if !user.IsActive {
		return "", fmt.Errorf("%w: account is deactivated", entity.ErrInvalidCredentials)
	}

	token, err := uc.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return "", fmt.Errorf("failed to generate token")
	}

	return token, nil
}

func (uc *authUseCase) GetUser(userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(userID)
}

// UpdateUser changes the caller's own email and/or password. Privileged
// flags (is_active, is_superuser, is_verified) cannot be self-assigned.
func (uc *authUseCase) UpdateUser(userID string, email, password *string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if email != nil && *email != user.Email {
		if _, err := uc.userRepo.GetByEmail(*email); err == nil {
			return nil, fmt.Errorf("%w: user with this email", entity.ErrConflict)
		}
		user.Email = *email
	}

	if password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			uc.logger.Error("Failed to hash password: %v", err)
			return nil, fmt.Errorf("failed to update password")
		}
		user.HashedPassword = string(hashedPassword)
	}

	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update user: %v", err)
		return nil, err
	}

	return user, nil
}

func (uc *authUseCase) RequestPasswordReset(ctx context.Context, email string) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		// Respond identically whether or not the account exists.
		return
	}

	token, err := uc.tokens.Issue(ctx, tokenstore.PurposeReset, user.ID, resetTokenTTL)
	if err != nil {
		uc.logger.Error("Failed to issue reset token: %v", err)
		return
	}

	body := fmt.Sprintf(
		"A password reset was requested for your account on %s.\n\nReset token: %s\n\nIt expires in %s. If you did not request this, ignore this message.",
		uc.baseURL, token, resetTokenTTL,
	)
	if err := uc.mailer.Send(user.Email, "Reset your password", body); err != nil {
		uc.logger.Warn("Failed to send reset mail to %s: %v", user.Email, err)
	}
}

func (uc *authUseCase) ResetPassword(ctx context.Context, token, password string) error {
	userID, ok := uc.tokens.Consume(ctx, tokenstore.PurposeReset, token)
	if !ok {
		return fmt.Errorf("%w: reset token", entity.ErrInvalidInput)
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return fmt.Errorf("failed to reset password")
	}

	user.HashedPassword = string(hashedPassword)
	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update password: %v", err)
		return err
	}

	return nil
}

func (uc *authUseCase) RequestVerifyToken(ctx context.Context, email string) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil || user.IsVerified {
		return
	}

	token, err := uc.tokens.Issue(ctx, tokenstore.PurposeVerify, user.ID, verifyTokenTTL)
	if err != nil {
		uc.logger.Error("Failed to issue verify token: %v", err)
		return
	}

	body := fmt.Sprintf(
		"Welcome! Verify your email address with this token: %s\n\nIt expires in %s.",
		token, verifyTokenTTL,
	)
	if err := uc.mailer.Send(user.Email, "Verify your email", body); err != nil {
		uc.logger.Warn("Failed to send verification mail to %s: %v", user.Email, err)
	}
}

func (uc *authUseCase) VerifyEmail(ctx context.Context, token string) (*entity.User, error) {
	userID, ok := uc.tokens.Consume(ctx, tokenstore.PurposeVerify, token)
	if !ok {
		return nil, fmt.Errorf("%w: verify token", entity.ErrInvalidInput)
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	user.IsVerified = true
	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to mark user verified: %v", err)
		return nil, err
	}

	return user, nil
}
