package session

import (
	"context"
	"testing"

	"github.com/tastybites/tastybites-client/internal/models"
)

func TestAddToFavorites(t *testing.T) {
	b := newFakeBackend()
	defer b.close()

	store, _ := loggedInStore(t, b)
	res := store.AddToFavorites(context.Background(), models.MenuItem{ID: "m1", Name: "Dosa", Price: 120})
	if !res.Success {
		t.Fatalf("add failed: %s", res.Error)
	}
	favs := store.Favorites()
	if len(favs) != 1 || favs[0].ItemID != "m1" {
		t.Errorf("unexpected favorites: %+v", favs)
	}
}

func TestFavorites_DeduplicatedByItemID(t *testing.T) {
	b := newFakeBackend()
	defer b.close()
	// An eventually consistent backend can report the same item twice; the
	// cache must keep the first occurrence only.
	b.favorites = []models.FavoriteItem{
		{ID: "f1", ItemID: "m1", Name: "Dosa", Price: 120},
		{ID: "f2", ItemID: "m1", Name: "Dosa", Price: 120},
		{ID: "f3", ItemID: "m2", Name: "Idli", Price: 60},
	}

	store, _ := loggedInStore(t, b)
	favs := store.Favorites()
	if len(favs) != 2 {
		t.Fatalf("expected 2 deduplicated favorites, got %d", len(favs))
	}
	if favs[0].ID != "f1" || favs[1].ID != "f3" {
		t.Errorf("dedupe must keep first occurrences: %+v", favs)
	}
}

func TestRemoveFromFavorites(t *testing.T) {
	b := newFakeBackend()
	defer b.close()
	b.favorites = []models.FavoriteItem{
		{ID: "f1", ItemID: "m1", Name: "Dosa", Price: 120},
		{ID: "f2", ItemID: "m2", Name: "Idli", Price: 60},
	}

	store, _ := loggedInStore(t, b)
	if res := store.RemoveFromFavorites(context.Background(), "m1"); !res.Success {
		t.Fatalf("remove failed: %s", res.Error)
	}
	favs := store.Favorites()
	if len(favs) != 1 || favs[0].ItemID != "m2" {
		t.Errorf("unexpected favorites: %+v", favs)
	}
}

func TestFavorites_RequiresLogin(t *testing.T) {
	b := newFakeBackend()
	defer b.close()

	store, _ := newTestStore(t, b)
	requireGuardFailure(t, store.AddToFavorites(context.Background(), models.MenuItem{ID: "m1"}))
	requireGuardFailure(t, store.RemoveFromFavorites(context.Background(), "m1"))
	if b.total() != 0 {
		t.Errorf("guard failures must not reach the network")
	}
}
