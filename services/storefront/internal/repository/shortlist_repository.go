package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/diagnosis/luxstay/pkg/storage"
)

// ShortlistRepository holds the recently viewed and favorite hotel ids.
// Neither list is partitioned per user.
type ShortlistRepository interface {
	PushRecent(ctx context.Context, hotelID, limit int) ([]int, error)
	Recent(ctx context.Context) ([]int, error)
	ToggleFavorite(ctx context.Context, hotelID, limit int) (bool, error)
	Favorites(ctx context.Context) ([]int, error)
}

type shortlistRepository struct {
	store storage.Store
	mu    sync.Mutex
}

func NewShortlistRepository(store storage.Store) ShortlistRepository {
	return &shortlistRepository{store: store}
}

// PushRecent moves hotelID to the front, dropping duplicates and anything past limit.
func (r *shortlistRepository) PushRecent(ctx context.Context, hotelID, limit int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	recent, err := storage.LoadList[int](ctx, r.store, storage.KeyRecentlyViewed)
	if err != nil {
		return nil, err
	}
	recent = slices.DeleteFunc(recent, func(id int) bool { return id == hotelID })
	recent = append([]int{hotelID}, recent...)
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	if err := storage.SetJSON(ctx, r.store, storage.KeyRecentlyViewed, recent); err != nil {
		return nil, err
	}
	return recent, nil
}

func (r *shortlistRepository) Recent(ctx context.Context) ([]int, error) {
	return storage.LoadList[int](ctx, r.store, storage.KeyRecentlyViewed)
}

// ToggleFavorite adds or removes hotelID and reports whether it is now a
// favorite. Adding past limit evicts the oldest entry.
func (r *shortlistRepository) ToggleFavorite(ctx context.Context, hotelID, limit int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	favs, err := storage.LoadList[int](ctx, r.store, storage.KeyFavorites)
	if err != nil {
		return false, err
	}

	added := !slices.Contains(favs, hotelID)
	if added {
		favs = append(favs, hotelID)
		if limit > 0 && len(favs) > limit {
			favs = favs[len(favs)-limit:]
		}
	} else {
		favs = slices.DeleteFunc(favs, func(id int) bool { return id == hotelID })
	}

	if err := storage.SetJSON(ctx, r.store, storage.KeyFavorites, favs); err != nil {
		return false, err
	}
	return added, nil
}

func (r *shortlistRepository) Favorites(ctx context.Context) ([]int, error) {
	return storage.LoadList[int](ctx, r.store, storage.KeyFavorites)
}
