package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/internal/domain/repository"
)

func TestUserRepository_CRUD(t *testing.T) {
	r := NewUserRepository()
	ctx := context.Background()

	u := &entity.User{Username: "alice", FirstName: "A", LastName: "B", PasswordHash: "x"}
	require.NoError(t, r.Create(ctx, u))
	assert.Equal(t, int64(1), u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := r.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	// callers get copies
	got.FirstName = "mutated"
	again, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", again.FirstName)

	again.Username = "alicia"
	require.NoError(t, r.Update(ctx, again))
	_, err = r.GetByUsername(ctx, "alice")
	require.ErrorIs(t, err, repository.ErrNotFound)
	renamed, err := r.GetByUsername(ctx, "alicia")
	require.NoError(t, err)
	assert.Equal(t, u.ID, renamed.ID)

	require.NoError(t, r.Delete(ctx, u.ID))
	_, err = r.GetByID(ctx, u.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, u.ID), repository.ErrNotFound)
}

func TestUserRepository_UniqueUsername(t *testing.T) {
	r := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, &entity.User{Username: "alice"}))
	bob := &entity.User{Username: "bob"}
	require.NoError(t, r.Create(ctx, bob))

	require.ErrorIs(t, r.Create(ctx, &entity.User{Username: "alice"}), repository.ErrDuplicateUsername)

	bob.Username = "alice"
	require.ErrorIs(t, r.Update(ctx, bob), repository.ErrDuplicateUsername)

	require.ErrorIs(t, r.Update(ctx, &entity.User{ID: 99, Username: "zed"}), repository.ErrNotFound)
}

func TestUserRepository_ConcurrentCreateSameUsername(t *testing.T) {
	r := NewUserRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- r.Create(ctx, &entity.User{Username: "race"})
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, repository.ErrDuplicateUsername)
	}
	assert.Equal(t, 1, ok)

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
