package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/diagnosis/luxstay/pkg/auth"
	"github.com/diagnosis/luxstay/pkg/config"
	"github.com/diagnosis/luxstay/pkg/events"
	"github.com/diagnosis/luxstay/pkg/logger"
	"github.com/diagnosis/luxstay/services/storefront/internal/domain"
	"github.com/diagnosis/luxstay/services/storefront/internal/repository"
)

type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (*domain.Session, error)
	Login(ctx context.Context, identifier, password string) (*domain.Session, error)
	Logout(ctx context.Context) error
	RestoreSession(ctx context.Context) (*domain.Session, error)
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
	LastIdentifier(ctx context.Context) (string, error)
}

type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	eventBus    events.EventBus
	config      *config.Config
	hashParams  *argon2id.Params
	ids         *IDGenerator
	now         func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	eventBus events.EventBus,
	config *config.Config,
	opts ...Option,
) AuthService {
	o := newOptions(opts)
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		eventBus:    eventBus,
		config:      config,
		hashParams:  o.hashParams,
		ids:         o.ids,
		now:         o.now,
	}
}

func (s *authService) Signup(ctx context.Context, username, email, password string) (*domain.Session, error) {
	req := &domain.SignupRequest{Username: username, Email: email, Password: password}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindConflict(ctx, req.Username, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrAlreadyExists
	}

	passwordHash, err := argon2id.CreateHash(req.Password, s.hashParams)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:        s.ids.Next(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  passwordHash,
		CreatedAt: s.now().UTC(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.InfoContext(ctx, "User signed up", "user_id", user.ID, "username", user.Username)

	event := events.UserSignedUpEvent{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.UserSignedUp, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish user signed up event", "error", err, "user_id", user.ID)
	}

	return s.startSession(ctx, user, user.Identifier())
}

// Login matches identifier against username or email. Unknown users and wrong
// passwords both yield ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, identifier, password string) (*domain.Session, error) {
	req := &domain.LoginRequest{Identifier: identifier, Password: password}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	identifier = strings.TrimSpace(identifier)

	user, err := s.userRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	valid, err := checkPassword(password, user.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, domain.ErrInvalidCredentials
	}

	return s.startSession(ctx, user, identifier)
}

func (s *authService) startSession(ctx context.Context, user *domain.User, identifier string) (*domain.Session, error) {
	token, err := auth.NewSessionToken(user.ID, user.Username, user.Email, s.config.Auth.JWTSecret, s.config.Auth.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create session token: %w", err)
	}

	if err := s.sessionRepo.Save(ctx, user, token); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	if err := s.sessionRepo.SetLastIdentifier(ctx, identifier); err != nil {
		logger.WarnContext(ctx, "Failed to remember login identifier", "error", err)
	}

	logger.InfoContext(ctx, "Session started", "user_id", user.ID)
	return &domain.Session{User: user, Token: token}, nil
}

// Logout always succeeds; storage failures are only logged.
func (s *authService) Logout(ctx context.Context) error {
	if err := s.sessionRepo.Clear(ctx); err != nil {
		logger.WarnContext(ctx, "Failed to clear persisted session", "error", err)
	}
	return nil
}

// RestoreSession trusts whatever session is persisted; the password is not
// re-checked. Returns nil when no session exists.
func (s *authService) RestoreSession(ctx context.Context) (*domain.Session, error) {
	user, token, err := s.sessionRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if user == nil {
		return nil, nil
	}
	return &domain.Session{User: user, Token: token}, nil
}

// Authenticate accepts token only if it is the persisted session token.
func (s *authService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrInvalidCredentials
	}
	session, err := s.RestoreSession(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil || subtle.ConstantTimeCompare([]byte(session.Token), []byte(token)) != 1 {
		return nil, domain.ErrInvalidCredentials
	}
	return session, nil
}

func (s *authService) LastIdentifier(ctx context.Context) (string, error) {
	return s.sessionRepo.LastIdentifier(ctx)
}

const argon2idPrefix = "$argon2id$"

// checkPassword accepts argon2id hashes and, for records written before
// hashing was introduced, plaintext values.
func checkPassword(password, stored string) (bool, error) {
	if strings.HasPrefix(stored, argon2idPrefix) {
		return argon2id.ComparePasswordAndHash(password, stored)
	}
	return stored != "" && subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1, nil
}
