// Package memory keeps user records in process memory for local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/internal/domain/repository"
)

type UserRepository struct {
	mu         sync.RWMutex
	nextID     int64
	users      map[int64]*entity.User
	byUsername map[string]int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:      make(map[int64]*entity.User),
		byUsername: make(map[string]int64),
	}
}

func clone(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func (r *UserRepository) GetAll(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, clone(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(u), nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byUsername[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(r.users[id]), nil
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byUsername[u.Username]; exists {
		return repository.ErrDuplicateUsername
	}
	r.nextID++
	now := time.Now().UTC()
	u.ID = r.nextID
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users[u.ID] = clone(u)
	r.byUsername[u.Username] = u.ID
	return nil
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if holder, taken := r.byUsername[u.Username]; taken && holder != u.ID {
		return repository.ErrDuplicateUsername
	}
	delete(r.byUsername, cur.Username)
	u.UpdatedAt = time.Now().UTC()
	r.users[u.ID] = clone(u)
	r.byUsername[u.Username] = u.ID
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(r.byUsername, u.Username)
	delete(r.users, id)
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
