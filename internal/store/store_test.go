package store_test

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afoley587/coding-challenges-2025/user-records/internal/config"
	"github.com/afoley587/coding-challenges-2025/user-records/internal/store"
	"github.com/afoley587/coding-challenges-2025/user-records/internal/user"
)

var (
	john = user.User{ID: 1, Name: "John Doe", Email: "john@example.com", Role: user.RoleAdmin}
	jane = user.User{ID: 2, Name: "Jane Smith", Email: "jane@example.com", Role: user.RoleUser}
)

// backends returns a constructor per implementation so that every test
// below runs against each of them with a fresh, empty store.
func backends() map[string]func(t *testing.T) store.UserStore {
	return map[string]func(t *testing.T) store.UserStore{
		"memory": func(t *testing.T) store.UserStore {
			return store.NewInMemoryStore()
		},
		"redis": func(t *testing.T) store.UserStore {
			mr := miniredis.RunT(t)
			s, err := store.NewRedisStore(context.Background(), store.RedisOptions{Addr: mr.Addr()})
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			return s
		},
		"sqlite": func(t *testing.T) store.UserStore {
			s, err := store.NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "users.db"))
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			return s
		},
	}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, s store.UserStore)) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			fn(t, newStore(t))
		})
	}
}

func mustAdd(t *testing.T, s store.UserStore, users ...user.User) {
	t.Helper()
	for _, u := range users {
		got, err := s.AddUser(context.Background(), u)
		require.NoError(t, err)
		require.Equal(t, u, got, "AddUser must return the record unchanged")
	}
}

func TestEmptyStore(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s store.UserStore) {
		ctx := context.Background()

		all, err := s.ListUsers(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)

		_, ok, err := s.GetUser(ctx, 1)
		require.NoError(t, err)
		assert.False(t, ok)

		admins, err := s.ListUsersByRole(ctx, user.RoleAdmin)
		require.NoError(t, err)
		assert.NotNil(t, admins)
		assert.Empty(t, admins)
	})
}

func TestAddGetAndFilter(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s store.UserStore) {
		ctx := context.Background()
		mustAdd(t, s, john, jane)

		got, ok, err := s.GetUser(ctx, 1)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "John Doe", got.Name)

		admins, err := s.ListUsersByRole(ctx, user.RoleAdmin)
		require.NoError(t, err)
		assert.Len(t, admins, 1)

		_, ok, err = s.GetUser(ctx, 99)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestInsertionOrder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s store.UserStore) {
		want := []user.User{
			{ID: 5, Name: "e", Email: "e@example.com", Role: user.RoleGuest},
			{ID: 3, Name: "c", Email: "c@example.com", Role: user.RoleUser},
			{ID: 9, Name: "i", Email: "i@example.com", Role: user.RoleAdmin},
			{ID: 1, Name: "a", Email: "a@example.com", Role: user.RoleUser},
		}
		mustAdd(t, s, want...)

		all, err := s.ListUsers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, all)
	})
}

func TestDuplicateIDFirstMatchWins(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s store.UserStore) {
		ctx := context.Background()
		first := user.User{ID: 1, Name: "First", Email: "first@example.com", Role: user.RoleUser}
		second := user.User{ID: 1, Name: "Second", Email: "second@example.com", Role: user.RoleAdmin}
		mustAdd(t, s, first, second)

		got, ok, err := s.GetUser(ctx, 1)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, first, got)

		// Duplicates are kept, not replaced.
		all, err := s.ListUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, []user.User{first, second}, all)
	})
}

func TestListUsersByRolePreservesOrder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s store.UserStore) {
		ctx := context.Background()
		a := user.User{ID: 1, Name: "A", Email: "a@example.com", Role: user.RoleAdmin}
		b := user.User{ID: 2, Name: "B", Email: "b@example.com", Role: user.RoleUser}
		c := user.User{ID: 3, Name: "C", Email: "c@example.com", Role: user.RoleGuest}
		d := user.User{ID: 4, Name: "D", Email: "d@example.com", Role: user.RoleUser}
		mustAdd(t, s, a, b, c, d)

		users, err := s.ListUsersByRole(ctx, user.RoleUser)
		require.NoError(t, err)
		assert.Equal(t, []user.User{b, d}, users)

		guests, err := s.ListUsersByRole(ctx, user.RoleGuest)
		require.NoError(t, err)
		assert.Equal(t, []user.User{c}, guests)
	})
}

func TestReadsAreIdempotent(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s store.UserStore) {
		ctx := context.Background()
		mustAdd(t, s, john, jane)

		all1, err := s.ListUsers(ctx)
		require.NoError(t, err)
		all2, err := s.ListUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, all1, all2)

		u1, ok1, err := s.GetUser(ctx, 2)
		require.NoError(t, err)
		u2, ok2, err := s.GetUser(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, ok1, ok2)
		assert.Equal(t, u1, u2)

		r1, err := s.ListUsersByRole(ctx, user.RoleUser)
		require.NoError(t, err)
		r2, err := s.ListUsersByRole(ctx, user.RoleUser)
		require.NoError(t, err)
		assert.Equal(t, r1, r2)
	})
}

func TestListUsersReturnsSnapshot(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s store.UserStore) {
		ctx := context.Background()
		mustAdd(t, s, john, jane)

		all, err := s.ListUsers(ctx)
		require.NoError(t, err)
		all[0].Name = "Mallory"

		again, err := s.ListUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, "John Doe", again[0].Name)
	})
}

func TestRedisStoreUsesConfiguredKey(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := store.NewRedisStore(context.Background(), store.RedisOptions{Addr: mr.Addr(), Key: "records"})
	require.NoError(t, err)
	defer s.Close()

	mustAdd(t, s, john)

	items, err := mr.List("records")
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.False(t, mr.Exists(store.DefaultRedisKey))
}

func TestRedisStoreUnreachable(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())

	_, err = store.NewRedisStore(context.Background(), store.RedisOptions{Addr: addr})
	require.Error(t, err)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.db")

	s, err := store.NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	mustAdd(t, s, john, jane)
	require.NoError(t, s.Close())

	s, err = store.NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	all, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []user.User{john, jane}, all)
}

func TestSQLiteStoreInMemory(t *testing.T) {
	ctx := context.Background()
	s, err := store.NewSQLiteStore(ctx, ":memory:")
	require.NoError(t, err)
	defer s.Close()

	mustAdd(t, s, john, jane)

	all, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []user.User{john, jane}, all)

	got, ok, err := s.GetUser(ctx, jane.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, jane, got)
}

func TestSQLiteStorePathWithQuery(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.db")

	s, err := store.NewSQLiteStore(ctx, path+"?_foreign_keys=on")
	require.NoError(t, err)
	mustAdd(t, s, john)
	require.NoError(t, s.Close())

	// The options must not leak into the file name.
	_, err = os.Stat(path)
	require.NoError(t, err)

	s, err = store.NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	all, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []user.User{john}, all)
}

func TestInMemoryStoreConcurrentAccess(t *testing.T) {
	const n = 100
	ctx := context.Background()
	s := store.NewInMemoryStore()

	var wg sync.WaitGroup
	errs := make(chan error, 3*n)
	for i := 0; i < n; i++ {
		i := i
		wg.Add(3)
		go func() {
			defer wg.Done()
			_, err := s.AddUser(ctx, user.User{ID: int64(i), Name: "u", Email: "u@example.com", Role: user.RoleUser})
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := s.ListUsers(ctx)
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, _, err := s.GetUser(ctx, int64(i))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	all, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, n)

	seen := make(map[int64]bool, n)
	for _, u := range all {
		seen[u.ID] = true
	}
	for i := 0; i < n; i++ {
		assert.True(t, seen[int64(i)], "missing id %d", i)
	}

	users, err := s.ListUsersByRole(ctx, user.RoleUser)
	require.NoError(t, err)
	assert.Len(t, users, n)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := store.Open(ctx, config.StoreConfig{Backend: config.BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &store.InMemoryStore{}, s)

	s, err = store.Open(ctx, config.StoreConfig{
		Backend: config.BackendSQLite,
		SQLite:  config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "users.db")},
	})
	require.NoError(t, err)
	assert.IsType(t, &store.SQLiteStore{}, s)
	require.NoError(t, s.Close())

	mr := miniredis.RunT(t)
	s, err = store.Open(ctx, config.StoreConfig{
		Backend: config.BackendRedis,
		Redis:   config.RedisConfig{Addr: mr.Addr()},
	})
	require.NoError(t, err)
	assert.IsType(t, &store.RedisStore{}, s)
	require.NoError(t, s.Close())

	_, err = store.Open(ctx, config.StoreConfig{Backend: "mongo"})
	require.ErrorIs(t, err, config.ErrUnknownBackend)
}
