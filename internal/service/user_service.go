// Package service contains the application's business logic.
package service

import (
	"context"
	"time"

	"chirp/internal/models"
	"chirp/internal/repository"
	"chirp/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
}

type SignupInput struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

type UpdateProfileInput struct {
	UserID    uint
	Email     *string
	FirstName *string
	LastName  *string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Signup registers a new account. The password is stored as a bcrypt hash,
// never as the submitted value.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:  in.Username,
		Password:  string(hash),
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies the credentials and records the login time.
// The error is the same whether the username or the password is wrong.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthenticatedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthenticatedError("Invalid credentials")
	}

	now := time.Now().UTC()
	if err := s.userRepo.SetLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile changes profile fields. Username and password are immutable
// through this path.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxNameLen = 150

	if in.Email != nil {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = *in.Email
	}
	if in.FirstName != nil {
		if len(*in.FirstName) > maxNameLen {
			return nil, models.NewValidationError("First name too long (max 150 characters)")
		}
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		if len(*in.LastName) > maxNameLen {
			return nil, models.NewValidationError("Last name too long (max 150 characters)")
		}
		user.LastName = *in.LastName
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	return s.userRepo.Delete(ctx, id)
}

// GetActivity returns the last login and last request timestamps for a user.
func (s *UserService) GetActivity(ctx context.Context, id uint) (*models.UserActivity, error) {
	return s.userRepo.Activity(ctx, id)
}

// SetStaff grants or revokes the staff flag.
func (s *UserService) SetStaff(ctx context.Context, targetID uint, isStaff bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	user.IsStaff = isStaff
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// TouchLastRequest records that the user made an authenticated request.
func (s *UserService) TouchLastRequest(ctx context.Context, id uint, at time.Time) error {
	return s.userRepo.TouchLastRequest(ctx, id, at)
}
