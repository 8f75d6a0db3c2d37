package service

import (
	"context"
	"errors"

	"github.com/spendwise/internal/forms"
	"github.com/spendwise/internal/models"
	"github.com/spendwise/internal/repository"
	"github.com/spendwise/internal/session"
	"github.com/spendwise/pkg/crypto"
)

var (
	// ErrInvalidCredentials deliberately covers both unknown email and
	// wrong password; callers must not be able to tell them apart.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const (
	msgUsernameTaken   = "Username is already taken. Please choose another one."
	msgEmailRegistered = "Email is already registered. Please use another one or login."
)

// AuthService handles registration, login and logout
type AuthService struct {
	userRepo *repository.UserRepository
	sessions *session.Manager
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo *repository.UserRepository, sessions *session.Manager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
	}
}

// Register creates a new user with a hashed password. Uniqueness failures
// come back as field errors; no row is created in that case.
func (s *AuthService) Register(form *forms.RegisterForm) (*models.User, forms.Errors, error) {
	errs := forms.Errors{}

	taken, err := s.userRepo.ExistsByUsername(form.Username)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		errs.Add("username", msgUsernameTaken)
	}

	registered, err := s.userRepo.ExistsByEmail(form.Email)
	if err != nil {
		return nil, nil, err
	}
	if registered {
		errs.Add("email", msgEmailRegistered)
	}

	if errs.Any() {
		return nil, errs, nil
	}

	hash, err := crypto.HashPassword(form.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(user); err != nil {
		// A concurrent registration slipped past the pre-checks and hit
		// the unique constraint; report it exactly as the pre-check would.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, s.attributeDuplicate(form), nil
		}
		return nil, nil, err
	}

	return user, nil, nil
}

func (s *AuthService) attributeDuplicate(form *forms.RegisterForm) forms.Errors {
	errs := forms.Errors{}
	if taken, err := s.userRepo.ExistsByUsername(form.Username); err == nil && taken {
		errs.Add("username", msgUsernameTaken)
	}
	if registered, err := s.userRepo.ExistsByEmail(form.Email); err == nil && registered {
		errs.Add("email", msgEmailRegistered)
	}
	if !errs.Any() {
		errs.Add("username", msgUsernameTaken)
	}
	return errs
}

// Login verifies the credentials and issues a session token
func (s *AuthService) Login(ctx context.Context, form *forms.LoginForm) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(form.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !crypto.CheckPassword(form.Password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(ctx, user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Logout revokes the session token
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// GetUserByID retrieves a user by ID
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}
