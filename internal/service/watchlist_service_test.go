package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/dhanush217/Movie-review/internal/store"
)

func TestWatchlistAddAndList(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.addUser(t, "alice")
	first := env.addMovie(t, "Watchlist Movie One")
	second := env.addMovie(t, "Watchlist Movie Two")

	if err := env.watchlist.Add(ctx, alice.ID, first.ID); err != nil {
		t.Fatalf("add first: %v", err)
	}
	if err := env.watchlist.Add(ctx, alice.ID, second.ID); err != nil {
		t.Fatalf("add second: %v", err)
	}

	items, err := env.watchlist.List(ctx, alice.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 watchlist items, got %d", len(items))
	}
	// Items are the reduced projection, not full movies.
	for _, item := range items {
		if item.Title == "" || item.PosterURL == "" {
			t.Fatalf("watchlist item missing projection fields: %+v", item)
		}
	}
}

func TestWatchlistAddDuplicate(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.addUser(t, "alice")
	movie := env.addMovie(t, "Twice Added Movie")

	if err := env.watchlist.Add(ctx, alice.ID, movie.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := env.watchlist.Add(ctx, alice.ID, movie.ID); !errors.Is(err, store.ErrAlreadyInWatchlist) {
		t.Fatalf("expected ErrAlreadyInWatchlist, got %v", err)
	}
	if size := env.users.WatchlistSize(alice.ID); size != 1 {
		t.Fatalf("duplicate add changed watchlist size: %d", size)
	}
}

func TestWatchlistAddUnknownTargets(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.addUser(t, "alice")
	movie := env.addMovie(t, "Known Movie")

	if err := env.watchlist.Add(ctx, uuid.NewString(), movie.ID); !errors.Is(err, store.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := env.watchlist.Add(ctx, alice.ID, uuid.NewString()); !errors.Is(err, store.ErrMovieNotFound) {
		t.Fatalf("expected ErrMovieNotFound, got %v", err)
	}
}

func TestWatchlistRemoveIsIdempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.addUser(t, "alice")
	movie := env.addMovie(t, "Removable Movie")

	if err := env.watchlist.Add(ctx, alice.ID, movie.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := env.watchlist.Remove(ctx, alice.ID, movie.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if size := env.users.WatchlistSize(alice.ID); size != 0 {
		t.Fatalf("expected empty watchlist after removal, got %d", size)
	}

	// Removing an absent entry succeeds and changes nothing.
	if err := env.watchlist.Remove(ctx, alice.ID, movie.ID); err != nil {
		t.Fatalf("second remove should be a no-op, got %v", err)
	}
	if err := env.watchlist.Remove(ctx, alice.ID, uuid.NewString()); err != nil {
		t.Fatalf("removing a never-added movie should be a no-op, got %v", err)
	}
}

func TestWatchlistsAreIndependentPerUser(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.addUser(t, "alice")
	bob := env.addUser(t, "bob")
	movie := env.addMovie(t, "Shared Interest Movie")

	if err := env.watchlist.Add(ctx, alice.ID, movie.ID); err != nil {
		t.Fatalf("alice add: %v", err)
	}
	if err := env.watchlist.Add(ctx, bob.ID, movie.ID); err != nil {
		t.Fatalf("bob add should not collide with alice's entry: %v", err)
	}
	if err := env.watchlist.Remove(ctx, alice.ID, movie.ID); err != nil {
		t.Fatalf("alice remove: %v", err)
	}
	if size := env.users.WatchlistSize(bob.ID); size != 1 {
		t.Fatalf("alice's removal affected bob's watchlist: %d", size)
	}
}
