package session

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Get(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on empty store: got %v, want ErrNotFound", err)
	}

	draft := Draft{Step: StepVolume, Product: "Береза колотая"}
	if err := store.Save(ctx, 1, draft); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != draft {
		t.Errorf("Get = %+v, want %+v", got, draft)
	}

	// Drafts are keyed per chat.
	if _, err := store.Get(ctx, 2); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get for other chat: got %v, want ErrNotFound", err)
	}

	if err := store.Clear(ctx, 1); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := store.Get(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Clear: got %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_ClearMissing(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Clear(context.Background(), 42); err != nil {
		t.Errorf("Clear on missing draft: %v", err)
	}
}

func TestMemoryStore_ConcurrentChats(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(chatID int64) {
			defer wg.Done()
			draft := Draft{Step: StepAddress, Volume: 2.5}
			if err := store.Save(ctx, chatID, draft); err != nil {
				t.Errorf("Save(%d): %v", chatID, err)
			}
			if _, err := store.Get(ctx, chatID); err != nil {
				t.Errorf("Get(%d): %v", chatID, err)
			}
		}(int64(i))
	}
	wg.Wait()
}
