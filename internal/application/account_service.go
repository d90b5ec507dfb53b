package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	repo "github.com/oksasatya/go-account-service/internal/domain/repository"
)

// AccountService holds the registration, login and profile rules for user accounts.
// Username uniqueness is pre-checked here; the store's unique constraint is the
// authoritative guard and its violations map to the same errors.
type AccountService struct {
	Repo   repo.UserRepository
	Hasher PasswordHasher
	Events EventPublisher
	Index  UserIndex
	Logger *logrus.Logger

	// dummyDigest is verified against when the username is unknown, so both
	// login failures pay the same hashing cost.
	dummyDigest string
}

func NewAccountService(repo repo.UserRepository, hasher PasswordHasher, events EventPublisher, index UserIndex, logger *logrus.Logger) *AccountService {
	if events == nil {
		events = NoopPublisher{}
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	s := &AccountService{
		Repo:   repo,
		Hasher: hasher,
		Events: events,
		Index:  index,
		Logger: logger,
	}
	if digest, err := hasher.Hash("login-timing-placeholder"); err == nil {
		s.dummyDigest = digest
	} else {
		logger.WithError(err).Warn("dummy digest unavailable")
	}
	return s
}

func (s *AccountService) GetAll(ctx context.Context) ([]*entity.User, error) {
	return s.Repo.GetAll(ctx)
}

func (s *AccountService) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// GetByUsername returns (nil, nil) when nobody holds username.
func (s *AccountService) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	u, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// Login returns the stored user, digest included. Redaction is the caller's job.
func (s *AccountService) Login(ctx context.Context, req LoginRequest) (*entity.User, error) {
	u, err := s.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		_ = s.Hasher.Verify(s.dummyDigest, req.Password)
		return nil, ErrInvalidCredentials
	}
	if !s.Hasher.Verify(u.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (*entity.User, error) {
	existing, err := s.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateUsername
	}

	hash, err := s.Hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("user registered")
	s.afterWrite(ctx, EventUserRegistered, u)
	return u, nil
}

// Update applies the non-empty fields of req to user id.
//
// Order: request shape, existence, old password, username ownership, then mutation.
// When OldPassword is empty the password check is skipped, even for a password change.
func (s *AccountService) Update(ctx context.Context, id int64, req UpdateRequest) (*entity.User, error) {
	if req.empty() {
		return nil, errNoUpdateFields
	}

	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.OldPassword != "" && !s.Hasher.Verify(u.PasswordHash, req.OldPassword) {
		return nil, errOldPasswordWrong
	}

	if req.Username != "" {
		holder, err := s.GetByUsername(ctx, req.Username)
		if err != nil {
			return nil, err
		}
		if holder != nil && holder.ID != id {
			return nil, errUsernameTaken
		}
	}

	if req.NewPassword != "" {
		hash, err := s.Hasher.Hash(req.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}
	if req.FirstName != "" {
		u.FirstName = req.FirstName
	}
	if req.LastName != "" {
		u.LastName = req.LastName
	}
	if req.Username != "" {
		u.Username = req.Username
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicateUsername):
			return nil, errUsernameTaken
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.afterWrite(ctx, EventUserUpdated, u)
	return u, nil
}

func (s *AccountService) Delete(ctx context.Context, id int64) error {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.Logger.WithFields(logrus.Fields{"user_id": id, "username": u.Username}).Info("user deleted")
	s.afterWrite(ctx, EventUserDeleted, u)
	return nil
}

// SearchUsers queries the search index. Without an index it returns no hits.
func (s *AccountService) SearchUsers(ctx context.Context, q string, size int) ([]UserHit, error) {
	if s.Index == nil {
		return []UserHit{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	return s.Index.Search(ctx, q, size)
}

// afterWrite fans a committed mutation out to the event bus and the search index.
// Failures are logged and never reach the caller.
func (s *AccountService) afterWrite(ctx context.Context, eventType string, u *entity.User) {
	log := s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "event": eventType})

	evt := AccountEvent{
		Type:       eventType,
		UserID:     u.ID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.Events.Publish(ctx, evt); err != nil {
		log.WithError(err).Warn("publish account event failed")
	}

	if s.Index == nil {
		return
	}
	var err error
	if eventType == EventUserDeleted {
		err = s.Index.Remove(ctx, u.ID)
	} else {
		err = s.Index.Index(ctx, u)
	}
	if err != nil {
		log.WithError(err).Warn("search index sync failed")
	}
}
