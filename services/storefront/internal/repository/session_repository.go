package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/diagnosis/luxstay/pkg/storage"
	"github.com/diagnosis/luxstay/services/storefront/internal/domain"
)

// SessionRepository persists the single active session and the last login
// identifier.
type SessionRepository interface {
	Save(ctx context.Context, user *domain.User, token string) error
	Load(ctx context.Context) (*domain.User, string, error)
	Clear(ctx context.Context) error
	SetLastIdentifier(ctx context.Context, identifier string) error
	LastIdentifier(ctx context.Context) (string, error)
}

type sessionRepository struct {
	store storage.Store
	mu    sync.Mutex
}

func NewSessionRepository(store storage.Store) SessionRepository {
	return &sessionRepository{store: store}
}

func (r *sessionRepository) Save(ctx context.Context, user *domain.User, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := storage.SetJSON(ctx, r.store, storage.KeyCurrentUser, user); err != nil {
		return err
	}
	if err := r.store.Set(ctx, storage.KeyAuthToken, token); err != nil {
		return fmt.Errorf("write %s: %w", storage.KeyAuthToken, err)
	}
	return nil
}

// Load returns the persisted user and token, or a nil user when either is missing.
func (r *sessionRepository) Load(ctx context.Context) (*domain.User, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, err := r.store.Get(ctx, storage.KeyAuthToken)
	if errors.Is(err, storage.ErrNotFound) || token == "" {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", storage.KeyAuthToken, err)
	}

	var user domain.User
	ok, err := storage.GetJSON(ctx, r.store, storage.KeyCurrentUser, &user)
	if err != nil || !ok {
		return nil, "", err
	}
	if user.ID == 0 {
		return nil, "", nil
	}
	return &user, token, nil
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return errors.Join(
		r.store.Remove(ctx, storage.KeyCurrentUser),
		r.store.Remove(ctx, storage.KeyAuthToken),
	)
}

func (r *sessionRepository) SetLastIdentifier(ctx context.Context, identifier string) error {
	return r.store.Set(ctx, storage.KeyLastLoginIdentifier, identifier)
}

func (r *sessionRepository) LastIdentifier(ctx context.Context) (string, error) {
	v, err := r.store.Get(ctx, storage.KeyLastLoginIdentifier)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	return v, err
}
