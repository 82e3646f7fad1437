package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tour-booking-api/internal/email"
	"tour-booking-api/internal/token"
	"tour-booking-api/internal/user/model"
	appErrors "tour-booking-api/pkg/errors"
	"tour-booking-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// resetTokenTTL is the fixed validity window of a password reset token.
const resetTokenTTL = 10 * time.Minute

// Repository is the persistence surface the service needs. Implemented by
// repository.UserRepository.
type Repository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*model.User, error)
	GetByResetToken(ctx context.Context, tokenHash string) (*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string, changedAt time.Time) error
	SetResetToken(ctx context.Context, userID uuid.UUID, tokenHash string, expires time.Time) error
	ClearResetToken(ctx context.Context, userID uuid.UUID) error
	Deactivate(ctx context.Context, userID uuid.UUID) error
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type UserService struct {
	repo   Repository
	tokens *token.Manager
	mailer email.Mailer
	log    *zap.Logger
}

func NewService(repo Repository, tokens *token.Manager, mailer email.Mailer, log *zap.Logger) *UserService {
	return &UserService{
		repo:   repo,
		tokens: tokens,
		mailer: mailer,
		log:    log,
	}
}

func (s *UserService) Signup(ctx context.Context, request *model.SignupRequest) (*model.AuthResult, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, appErrors.Validation(utils.FormatValidationError(err), err)
	}

	if err := utils.ValidatePassword(request.Password); err != nil {
		return nil, appErrors.Validation(err.Error(), nil)
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:         request.Name,
		Email:        utils.SanitizeEmail(request.Email),
		Role:         model.RoleUser,
		PasswordHash: hashedPassword,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	signed, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &model.AuthResult{Token: signed, User: user.ToResponse()}, nil
}

func (s *UserService) Login(ctx context.Context, request *model.LoginRequest) (string, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return "", appErrors.Validation(utils.FormatValidationError(err), err)
	}

	user, err := s.repo.GetByEmail(ctx, utils.SanitizeEmail(request.Email))
	if err != nil {
		if errors.Is(err, appErrors.ErrUserNotFound) {
			return "", appErrors.ErrBadCredentials
		}
		return "", err
	}

	if !user.Active {
		return "", appErrors.ErrUserInactive
	}

	if !utils.CheckPassword(user.PasswordHash, request.Password) {
		return "", appErrors.ErrBadCredentials
	}

	signed, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return signed, nil
}

// ForgotPassword moves the user from the idle to the requested reset state:
// a random plaintext token is generated, only its hash and expiry are
// stored, and the plaintext is mailed out embedded in resetURLBase. A
// repeated request simply overwrites the previous pair. If delivery fails
// the stored pair is cleared before the error surfaces, so a dangling,
// unusable token never survives.
func (s *UserService) ForgotPassword(ctx context.Context, request *model.ForgotPasswordRequest, resetURLBase string) error {
	if err := utils.ValidateStruct(request); err != nil {
		return appErrors.Validation(utils.FormatValidationError(err), err)
	}

	user, err := s.repo.GetByEmail(ctx, utils.SanitizeEmail(request.Email))
	if err != nil {
		return err
	}
	// Deactivated accounts cannot log in, so a reset token would be useless;
	// answer exactly as if the address were unknown.
	if !user.Active {
		return appErrors.ErrUserNotFound
	}

	plaintext, err := utils.GenerateResetToken()
	if err != nil {
		return err
	}

	expires := time.Now().Add(resetTokenTTL)
	if err := s.repo.SetResetToken(ctx, user.ID, utils.HashResetToken(plaintext), expires); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/%s", resetURLBase, plaintext)
	if err := s.mailer.SendPasswordReset(ctx, user.Email, user.Name, resetURL); err != nil {
		s.log.Error("password reset email dispatch failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		if clearErr := s.repo.ClearResetToken(ctx, user.ID); clearErr != nil {
			s.log.Error("failed to roll back reset token after dispatch failure",
				zap.String("user_id", user.ID.String()),
				zap.Error(clearErr),
			)
		}
		return appErrors.ErrEmailDispatch
	}

	return nil
}

// ResetPassword consumes an outstanding reset token. The presented
// plaintext is hashed with the same one-way function and matched against
// the store; an expired match clears the stale pair as a side effect. On
// success the new password is installed, the token fields are cleared,
// password_changed_at is stamped and a fresh bearer token logs the user in
// immediately.
func (s *UserService) ResetPassword(ctx context.Context, plaintext string, request *model.ResetPasswordRequest) (string, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return "", appErrors.Validation(utils.FormatValidationError(err), err)
	}

	if err := utils.ValidatePassword(request.Password); err != nil {
		return "", appErrors.Validation(err.Error(), nil)
	}

	user, err := s.repo.GetByResetToken(ctx, utils.HashResetToken(plaintext))
	if err != nil {
		return "", err
	}

	if user.PasswordResetExpires == nil || time.Now().After(*user.PasswordResetExpires) {
		if clearErr := s.repo.ClearResetToken(ctx, user.ID); clearErr != nil {
			s.log.Error("failed to clear expired reset token",
				zap.String("user_id", user.ID.String()),
				zap.Error(clearErr),
			)
		}
		return "", appErrors.ErrExpiredResetToken
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, hashedPassword, time.Now()); err != nil {
		return "", err
	}

	signed, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return signed, nil
}

// UpdatePassword changes the password of an authenticated user and returns
// a fresh bearer token, since the change invalidates every earlier one.
func (s *UserService) UpdatePassword(ctx context.Context, userID uuid.UUID, request *model.UpdatePasswordRequest) (string, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return "", appErrors.Validation(utils.FormatValidationError(err), err)
	}

	if err := utils.ValidatePassword(request.NewPassword); err != nil {
		return "", appErrors.Validation(err.Error(), nil)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if !utils.CheckPassword(user.PasswordHash, request.CurrentPassword) {
		return "", appErrors.ErrBadCredentials
	}

	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, userID, hashedPassword, time.Now()); err != nil {
		return "", err
	}

	signed, err := s.tokens.Issue(userID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return signed, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, request *model.UpdateProfileRequest) (*model.UserResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, appErrors.Validation(utils.FormatValidationError(err), err)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		user.Name = *request.Name
	}
	if request.Email != nil {
		user.Email = utils.SanitizeEmail(*request.Email)
	}
	if request.Photo != nil {
		user.Photo = request.Photo
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// Deactivate soft-deletes the account; the record survives but no longer
// authenticates.
func (s *UserService) Deactivate(ctx context.Context, userID uuid.UUID) error {
	return s.repo.Deactivate(ctx, userID)
}

func (s *UserService) List(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *users[i].ToResponse())
	}
	return responses, nil
}

func (s *UserService) Get(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.repo.Delete(ctx, userID)
}
