package auth

import (
	"testing"
	"time"
)

func TestMemorySessionStoreRoundtrip(t *testing.T) {
	store := NewMemorySessionStore()

	token, err := store.Create(42, time.Hour)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if token == "" {
		t.Fatal("Create returned an empty token")
	}

	userID, ok := store.Get(token)
	if !ok || userID != 42 {
		t.Fatalf("Get = (%d, %v), want (42, true)", userID, ok)
	}

	other, err := store.Create(42, time.Hour)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if other == token {
		t.Error("two sessions share a token")
	}
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	store := NewMemorySessionStore()

	token, _ := store.Create(7, -time.Second)
	if _, ok := store.Get(token); ok {
		t.Error("expired session still resolves")
	}
}

func TestMemorySessionStoreDelete(t *testing.T) {
	store := NewMemorySessionStore()

	token, _ := store.Create(7, time.Hour)
	store.Delete(token)
	if _, ok := store.Get(token); ok {
		t.Error("deleted session still resolves")
	}

	// Deleting twice or deleting garbage must not panic.
	store.Delete(token)
	store.Delete("not-a-token")
}

func TestMemorySessionStoreUnknownToken(t *testing.T) {
	store := NewMemorySessionStore()
	if _, ok := store.Get("nope"); ok {
		t.Error("unknown token resolved")
	}
}
