// Package service holds the application's business rules, one service per
// aggregate. Services validate input, enforce ownership, and translate
// repository results into the error taxonomy the transport layer renders.
package service

import (
	"context"

	"recurate/internal/models"
	"recurate/internal/password"
	"recurate/internal/repository"
	"recurate/internal/session"
	"recurate/internal/validation"
)

type AuthService struct {
	userRepo repository.UserRepository
	sessions *session.Store
	hasher   *password.Hasher
}

type RegisterInput struct {
	FullName        string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
	ProfilePhoto    string
}

type LoginInput struct {
	Email    string
	Password string
}

func NewAuthService(userRepo repository.UserRepository, sessions *session.Store, hasher *password.Hasher) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		hasher:   hasher,
	}
}

// Register creates an account and opens a session for it. Validation
// short-circuits in a fixed order so a request with several problems reports
// the first one: required fields, email shape, phone shape, password
// confirmation, then email uniqueness.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, *session.Session, error) {
	if err := validation.ValidateRequired(
		[2]string{"full name", in.FullName},
		[2]string{"email", in.Email},
		[2]string{"phone", in.Phone},
		[2]string{"password", in.Password},
	); err != nil {
		return nil, nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePhone(in.Phone); err != nil {
		return nil, nil, models.NewValidationError(err.Error())
	}
	if in.Password != in.ConfirmPassword {
		return nil, nil, models.NewValidationError("passwords do not match")
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, nil, models.NewInternalError(err)
	}

	user := &models.User{
		FullName:     in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		ProfilePhoto: in.ProfilePhoto,
		Password:     hashed,
	}
	// Uniqueness rides on the email index; a concurrent duplicate insert
	// surfaces here as a conflict rather than in a racy pre-check.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	sess, err := s.sessions.Create(ctx, user)
	if err != nil {
		return nil, nil, models.NewInternalError(err)
	}
	return user, sess, nil
}

// Login verifies credentials and opens a session. An unknown email and a
// wrong password return distinct codes so callers can count them separately;
// the transport layer renders both with the same message.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, *session.Session, error) {
	if err := validation.ValidateRequired(
		[2]string{"email", in.Email},
		[2]string{"password", in.Password},
	); err != nil {
		return nil, nil, models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, models.NewNotFoundError("User", in.Email)
	}
	if !s.hasher.Verify(in.Password, user.Password) {
		return nil, nil, models.NewUnauthenticatedError("invalid credentials")
	}

	sess, err := s.sessions.Create(ctx, user)
	if err != nil {
		return nil, nil, models.NewInternalError(err)
	}
	return user, sess, nil
}

// Logout destroys the session behind the token. Unknown or already-destroyed
// tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, token)
}
