package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/diagnosis/luxstay/pkg/storage"
	"github.com/diagnosis/luxstay/services/storefront/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	FindConflict(ctx context.Context, username, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	store storage.Store
	mu    sync.Mutex
}

func NewUserRepository(store storage.Store) UserRepository {
	return &userRepository{store: store}
}

// Create appends user to the users collection. Uniqueness is checked under
// the same lock so two concurrent signups cannot both succeed.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := storage.LoadList[domain.User](ctx, r.store, storage.KeyUsers)
	if err != nil {
		return err
	}
	if conflict(users, user.Username, user.Email) != nil {
		return domain.ErrAlreadyExists
	}
	users = append(users, *user)
	return storage.SetJSON(ctx, r.store, storage.KeyUsers, users)
}

// FindByIdentifier matches username or email, ignoring case. Returns nil when absent.
func (r *userRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Matches(identifier) {
			return &users[i], nil
		}
	}
	return nil, nil
}

// FindConflict returns the first user holding username or email. Either value
// also conflicts with the other field, since login matches against both.
func (r *userRepository) FindConflict(ctx context.Context, username, email string) (*domain.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return conflict(users, username, email), nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	return storage.LoadList[domain.User](ctx, r.store, storage.KeyUsers)
}

func conflict(users []domain.User, username, email string) *domain.User {
	username, email = strings.TrimSpace(username), strings.TrimSpace(email)
	for i := range users {
		u := &users[i]
		if username != "" && (strings.EqualFold(u.Username, username) || strings.EqualFold(u.Email, username)) {
			return u
		}
		if email != "" && (strings.EqualFold(u.Email, email) || strings.EqualFold(u.Username, email)) {
			return u
		}
	}
	return nil
}
