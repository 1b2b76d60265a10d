// Package auth implements registration, login and bearer-token resolution.
// The rest of the system consumes it through the Provider capability and
// never sees credentials or token internals.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eleven-am/squall/internal/logger"
	"github.com/eleven-am/squall/internal/model"
	"github.com/eleven-am/squall/internal/store"
)

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email or username already registered")
)

// Provider authenticates a bearer credential and resolves it to a stable
// identity.
type Provider interface {
	Authenticate(ctx context.Context, credential string) (model.Principal, error)
}

// UserStore is the account capability the auth service depends on.
type UserStore interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// Service issues and validates JWT bearer tokens backed by the user store.
type Service struct {
	users  UserStore
	secret []byte
	ttl    time.Duration
	log    logger.Logger
}

func NewService(users UserStore, secret []byte, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Service{
		users:  users,
		secret: secret,
		ttl:    ttl,
		log:    logger.Auth(),
	}
}

// Register creates an account with a bcrypt-hashed credential. Duplicate
// email or username surfaces as ErrEmailTaken.
func (s *Service) Register(ctx context.Context, email, username, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	username = strings.TrimSpace(username)

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &model.User{
		ID:             uuid.New(),
		Email:          email,
		Username:       username,
		HashedPassword: hash,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.log.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies the credential and returns a signed bearer token. A missing
// account and a wrong password are indistinguishable.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !checkPassword(user.HashedPassword, password) {
		return "", ErrInvalidCredentials
	}

	return signToken(s.secret, user.ID, s.ttl)
}

// Authenticate resolves a bearer token to a Principal. Any parse or lookup
// failure collapses into ErrUnauthenticated.
func (s *Service) Authenticate(ctx context.Context, credential string) (model.Principal, error) {
	claims, err := parseToken(s.secret, credential)
	if err != nil {
		return model.Principal{}, ErrUnauthenticated
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return model.Principal{}, ErrUnauthenticated
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.Principal{}, ErrUnauthenticated
	}

	return model.Principal{ID: user.ID, Email: user.Email}, nil
}
