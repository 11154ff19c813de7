package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sakilait22310750/skillsync/internal/domain/entity"
	repo "github.com/sakilait22310750/skillsync/internal/domain/repository"
	"github.com/sakilait22310750/skillsync/pkg/helpers"
	"github.com/sakilait22310750/skillsync/pkg/mailer"
)

// ErrInvalidCredentials covers both unknown email and wrong password so the
// login response does not leak which one failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService handles signup, login and token issuance. Events is optional;
// when wired, a welcome notification is published after signup.
type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Events *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, events *helpers.RabbitPublisher, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Events: events, Logger: logger}
}

// Signup registers a new user and returns a fresh token so the client is
// signed in immediately.
func (s *AuthService) Signup(ctx context.Context, email, password, name string) (*entity.User, string, time.Time, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	u := &entity.User{
		Email:    email,
		Password: hash,
		Name:     name,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.JWT.Generate(u.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publishWelcome(ctx, u)
	return u, token, expiresAt, nil
}

// Login verifies credentials and issues a token whose subject is the
// user's email.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, time.Time, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !helpers.CheckPassword(u.Password, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.JWT.Generate(u.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return u, token, expiresAt, nil
}

// Profile resolves the authenticated identity into the stored user.
func (s *AuthService) Profile(ctx context.Context, identity string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, identity)
	if err != nil {
		return nil, repo.ErrUserNotFound
	}
	return u, nil
}

// UpdateProfile changes the caller's display fields.
func (s *AuthService) UpdateProfile(ctx context.Context, identity, name, bio, photoURL string) (*entity.User, error) {
	u, err := s.Profile(ctx, identity)
	if err != nil {
		return nil, err
	}
	if name != "" {
		u.Name = name
	}
	u.Bio = bio
	u.PhotoURL = photoURL
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) publishWelcome(ctx context.Context, u *entity.User) {
	if s.Events == nil {
		return
	}
	job := mailer.NotificationJob{
		Kind:           mailer.KindWelcome,
		RecipientEmail: u.Email,
		RecipientName:  u.Name,
		At:             time.Now().UTC(),
	}
	if err := s.Events.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("welcome notification publish failed")
	}
}
