package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjregee/tibr/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "nested", "chat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Init(context.Background()))
	return store
}

func TestInitIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Init(context.Background()))
}

func TestDialogRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	msgs := `[{"role":"user","content":"hello"}]`
	require.NoError(t, store.SaveDialog(ctx, &models.ChatDialog{ID: "d1", Description: "greeting", Messages: msgs}))

	got, err := store.GetDialog(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, []string{msgs}, got)

	msgs2 := `[{"role":"user","content":"hello"},{"role":"assistant","content":"hi"}]`
	require.NoError(t, store.UpdateDialog(ctx, "d1", msgs2))

	got, err = store.GetDialog(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, []string{msgs2}, got)

	history, err := store.ListDialogs(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, []string{"d1", "greeting", msgs2}, history[0].Tuple())
}

func TestGetUnknownDialogIsEmpty(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetDialog(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateUnknownDialogIsNotAnError(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.UpdateDialog(ctx, "missing", "[]"))

	history, err := store.ListDialogs(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestDuplicateDialogIDFails(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SaveDialog(ctx, &models.ChatDialog{ID: "d1", Description: "a", Messages: "[]"}))
	err := store.SaveDialog(ctx, &models.ChatDialog{ID: "d1", Description: "b", Messages: "[1]"})
	require.Error(t, err)

	history, err := store.ListDialogs(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "a", history[0].Description)
}

func TestProfilesRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SaveProfile(ctx, &models.Profile{ID: "p1", Preferences: `{"theme":"dark"}`}))
	require.NoError(t, store.SaveProfile(ctx, &models.Profile{ID: "p2", Email: "b@example.com", Preferences: `{}`}))
	require.NoError(t, store.UpdateProfile(ctx, &models.Profile{ID: "p1", Email: "a@example.com", Preferences: `{"theme":"light"}`}))

	profiles, err := store.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, []string{"p1", "a@example.com", `{"theme":"light"}`}, profiles[0].Tuple())
	assert.Equal(t, []string{"p2", "b@example.com", `{}`}, profiles[1].Tuple())

	require.Error(t, store.SaveProfile(ctx, &models.Profile{ID: "p2", Preferences: `{}`}))
}

func TestClosedStoreFails(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "chat.db"))
	require.NoError(t, err)
	require.NoError(t, store.Init(context.Background()))
	require.NoError(t, store.Close())

	_, err = store.ListDialogs(context.Background())
	require.Error(t, err)
}

func TestConcurrentDistinctWrites(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	const n = 32
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- store.SaveDialog(ctx, &models.ChatDialog{
				ID:          fmt.Sprintf("dialog-%02d", i),
				Description: fmt.Sprintf("dialog %d", i),
				Messages:    fmt.Sprintf(`[{"role":"user","content":"%d"}]`, i),
			})
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	history, err := store.ListDialogs(ctx)
	require.NoError(t, err)
	require.Len(t, history, n)

	seen := make(map[string]bool, n)
	for _, dialog := range history {
		seen[dialog.ID] = true
	}
	for i := 0; i < n; i++ {
		assert.True(t, seen[fmt.Sprintf("dialog-%02d", i)])
	}
}

func TestConcurrentSameIDWrites(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	contents := []string{`["first"]`, `["second"]`}
	var wg sync.WaitGroup
	errs := make(chan error, len(contents))
	for _, messages := range contents {
		wg.Add(1)
		go func(messages string) {
			defer wg.Done()
			errs <- store.SaveDialog(ctx, &models.ChatDialog{ID: "same", Description: "d", Messages: messages})
		}(messages)
	}
	wg.Wait()
	close(errs)

	failures := 0
	for err := range errs {
		if err != nil {
			failures++
		}
	}
	assert.Equal(t, 1, failures)

	got, err := store.GetDialog(ctx, "same")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, contents, got[0])
}
