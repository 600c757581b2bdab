package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"files-manager/internal/apperr"

	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	return NewManager(store), store
}

func TestManager_IssueResolveRevoke(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	token, err := m.Issue(ctx, 42)
	require.NoError(t, err)
	require.Len(t, token, 36)

	userID, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	require.Equal(t, int64(42), userID)

	require.NoError(t, m.Revoke(ctx, token))

	_, err = m.Resolve(ctx, token)
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestManager_RevokeTwiceFails(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	token, err := m.Issue(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, m.Revoke(ctx, token))
	require.ErrorIs(t, m.Revoke(ctx, token), apperr.ErrUnauthorized)
	require.ErrorIs(t, m.Revoke(ctx, "never-issued"), apperr.ErrUnauthorized)
	require.ErrorIs(t, m.Revoke(ctx, ""), apperr.ErrUnauthorized)
}

func TestManager_ResolveUnknownToken(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Resolve(context.Background(), "")
	require.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = m.Resolve(context.Background(), "d5b3c3f0-9b8e-4a5e-8f0e-1f2d3c4b5a69")
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestManager_ExpiredTokenBehavesAsNeverIssued(t *testing.T) {
	m, _ := newTestManager(t)
	m.ttl = 50 * time.Millisecond
	ctx := context.Background()

	token, err := m.Issue(ctx, 7)
	require.NoError(t, err)

	_, err = m.Resolve(ctx, token)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, err := m.Resolve(ctx, token)
		return errors.Is(err, apperr.ErrUnauthorized)
	}, 2*time.Second, 10*time.Millisecond)

	require.ErrorIs(t, m.Revoke(ctx, token), apperr.ErrUnauthorized)
}

func TestManager_ResolveDoesNotExtendTTL(t *testing.T) {
	m, _ := newTestManager(t)
	m.ttl = 200 * time.Millisecond
	ctx := context.Background()

	token, err := m.Issue(ctx, 7)
	require.NoError(t, err)

	deadline := time.Now().Add(m.ttl)
	for time.Now().Before(deadline.Add(-50 * time.Millisecond)) {
		_, err := m.Resolve(ctx, token)
		require.NoError(t, err)
		time.Sleep(20 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		_, err := m.Resolve(ctx, token)
		return errors.Is(err, apperr.ErrUnauthorized)
	}, 500*time.Millisecond, 10*time.Millisecond)
}

func TestManager_MultipleTokensPerUser(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	first, err := m.Issue(ctx, 5)
	require.NoError(t, err)
	second, err := m.Issue(ctx, 5)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	require.NoError(t, m.Revoke(ctx, first))

	userID, err := m.Resolve(ctx, second)
	require.NoError(t, err)
	require.Equal(t, int64(5), userID)
}

func TestManager_IssueNeverOverwrites(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	ids := []string{"same", "same", "fresh"}
	var mu sync.Mutex
	m.newID = func() string {
		mu.Lock()
		defer mu.Unlock()
		id := ids[0]
		ids = ids[1:]
		return id
	}

	first, err := m.Issue(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "same", first)

	second, err := m.Issue(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, "fresh", second)

	owner, err := m.Resolve(ctx, "same")
	require.NoError(t, err)
	require.Equal(t, int64(1), owner)
}

func TestManager_IssueGivesUpOnCollisions(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	m.newID = func() string { return "taken" }

	_, err := m.Issue(ctx, 1)
	require.NoError(t, err)

	_, err = m.Issue(ctx, 2)
	require.Error(t, err)
}

type failingStore struct {
	MemoryStore
	err error
}

func (s *failingStore) Get(context.Context, string) (string, error) { return "", s.err }
func (s *failingStore) Delete(context.Context, string) (bool, error) {
	return false, s.err
}

func TestManager_StoreErrorsAreNotAuthFailures(t *testing.T) {
	boom := errors.New("connection reset")
	m := NewManager(&failingStore{err: boom})
	ctx := context.Background()

	_, err := m.Resolve(ctx, "token")
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, apperr.ErrUnauthorized)

	err = m.Revoke(ctx, "token")
	require.ErrorIs(t, err, boom)
}

func TestManager_ConcurrentRevokeSucceedsOnce(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	token, err := m.Issue(ctx, 3)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan error, 10)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- m.Revoke(ctx, token)
		}()
	}
	wg.Wait()
	close(results)

	var ok int
	for err := range results {
		if err == nil {
			ok++
		} else {
			require.ErrorIs(t, err, apperr.ErrUnauthorized)
		}
	}
	require.Equal(t, 1, ok)
}
