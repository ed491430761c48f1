package session

import (
	"context"

	"github.com/tastybites/tastybites-client/internal/api"
	"github.com/tastybites/tastybites-client/internal/models"
)

// refreshFavorites refetches the favorites cache.
func (s *Store) refreshFavorites(ctx context.Context) error {
	ticket := s.take(cacheFavorites)
	items, err := s.api.Favorites(ctx)
	if err != nil {
		return err
	}
	s.applyFavorites(ticket, items)
	return nil
}

// applyFavorites installs a favorites list, deduplicated by itemId: even
// if the backend is eventually consistent about repeated adds, the cache
// holds at most one entry per item.
func (s *Store) applyFavorites(ticket uint64, items []models.FavoriteItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.latest(cacheFavorites, ticket) {
		return
	}
	s.favorites = dedupeFavorites(items)
}

func dedupeFavorites(items []models.FavoriteItem) []models.FavoriteItem {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, it := range items {
		if seen[it.ItemID] {
			continue
		}
		seen[it.ItemID] = true
		out = append(out, it)
	}
	return out
}

// AddToFavorites adds a menu item to the favorites list.
func (s *Store) AddToFavorites(ctx context.Context, item models.MenuItem) Result {
	if _, res := s.requireToken(); !res.Success {
		return res
	}

	ticket := s.take(cacheFavorites)
	items, err := s.api.AddFavorite(ctx, api.AddFavoriteRequest{
		ItemID: item.ID,
		Name:   item.Name,
		Price:  item.Price,
		Image:  item.Image,
		Type:   item.Type,
	})
	if err != nil {
		return failErr(err, "Could not add to favorites")
	}
	s.applyFavorites(ticket, items)
	return ok()
}

// RemoveFromFavorites removes a menu item from the favorites list.
func (s *Store) RemoveFromFavorites(ctx context.Context, itemID string) Result {
	if _, res := s.requireToken(); !res.Success {
		return res
	}

	ticket := s.take(cacheFavorites)
	items, err := s.api.RemoveFavorite(ctx, itemID)
	if err != nil {
		return failErr(err, "Could not remove from favorites")
	}
	s.applyFavorites(ticket, items)
	return ok()
}
