package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/diagnosis/luxstay/pkg/config"
	"github.com/diagnosis/luxstay/pkg/logger"
	"github.com/diagnosis/luxstay/services/storefront/internal/domain"
	"github.com/diagnosis/luxstay/services/storefront/internal/repository"
)

type ShortlistService interface {
	View(ctx context.Context, hotelID int) (*domain.Hotel, error)
	Recent(ctx context.Context) ([]domain.Hotel, error)
	ToggleFavorite(ctx context.Context, hotelID int) (bool, error)
	IsFavorite(ctx context.Context, hotelID int) (bool, error)
	Favorites(ctx context.Context) ([]domain.Hotel, error)
	Recommendations(ctx context.Context) ([]domain.Hotel, error)
}

type shortlistService struct {
	repo     repository.ShortlistRepository
	catalog  Catalog
	limits   config.ShortlistConfig
	recCount int
}

func NewShortlistService(repo repository.ShortlistRepository, catalog Catalog, cfg *config.Config) ShortlistService {
	return &shortlistService{
		repo:     repo,
		catalog:  catalog,
		limits:   cfg.Shortlist,
		recCount: cfg.Listing.RecommendationCount,
	}
}

// View returns the hotel and records it as the most recently viewed.
func (s *shortlistService) View(ctx context.Context, hotelID int) (*domain.Hotel, error) {
	hotel, ok := s.catalog.Find(hotelID)
	if !ok {
		return nil, fmt.Errorf("hotel %d: %w", hotelID, domain.ErrNotFound)
	}
	if _, err := s.repo.PushRecent(ctx, hotelID, s.limits.RecentLimit); err != nil {
		// viewing still works without history
		logger.WarnContext(ctx, "Failed to record recently viewed hotel", "error", err, "hotel_id", hotelID)
	}
	return hotel, nil
}

func (s *shortlistService) Recent(ctx context.Context) ([]domain.Hotel, error) {
	ids, err := s.repo.Recent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load recently viewed: %w", err)
	}
	return s.resolve(ids), nil
}

func (s *shortlistService) ToggleFavorite(ctx context.Context, hotelID int) (bool, error) {
	if _, ok := s.catalog.Find(hotelID); !ok {
		return false, fmt.Errorf("hotel %d: %w", hotelID, domain.ErrNotFound)
	}
	on, err := s.repo.ToggleFavorite(ctx, hotelID, s.limits.FavoritesLimit)
	if err != nil {
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}
	return on, nil
}

func (s *shortlistService) IsFavorite(ctx context.Context, hotelID int) (bool, error) {
	ids, err := s.repo.Favorites(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load favorites: %w", err)
	}
	return slices.Contains(ids, hotelID), nil
}

func (s *shortlistService) Favorites(ctx context.Context) ([]domain.Hotel, error) {
	ids, err := s.repo.Favorites(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	return s.resolve(ids), nil
}

func (s *shortlistService) Recommendations(ctx context.Context) ([]domain.Hotel, error) {
	ids, err := s.repo.Recent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load recently viewed: %w", err)
	}
	return domain.Recommend(s.catalog.All(), ids, s.recCount), nil
}

// resolve maps ids to hotels, skipping ids no longer in the catalog.
func (s *shortlistService) resolve(ids []int) []domain.Hotel {
	out := make([]domain.Hotel, 0, len(ids))
	for _, id := range ids {
		if h, ok := s.catalog.Find(id); ok {
			out = append(out, *h)
		}
	}
	return out
}
