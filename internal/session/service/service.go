// Package service provides business logic layer for invite sessions.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	inviteModel "github.com/festy23/team_invite/internal/invite/model"
	"github.com/festy23/team_invite/internal/invite/store"
	sessionModel "github.com/festy23/team_invite/internal/session/model"
	"github.com/festy23/team_invite/internal/session/repository"
)

// Service defines the interface for session operations.
type Service interface {
	// Mount creates a session holding an empty form.
	Mount(ctx context.Context) (*sessionModel.Session, error)

	// Get returns a live session.
	Get(ctx context.Context, id string) (*sessionModel.Session, error)

	// Dispatch applies action to the form of a session and returns the new state.
	Dispatch(ctx context.Context, id string, action inviteModel.Action) (inviteModel.FormState, error)

	// Unmount discards a session.
	Unmount(ctx context.Context, id string) error

	// Sweep deletes sessions idle longer than the TTL.
	Sweep(ctx context.Context) (int64, error)

	// RunSweeper calls Sweep every interval until ctx is done.
	RunSweeper(ctx context.Context, interval time.Duration)
}

// Option configures the service.
type Option func(*service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *service) {
		s.newID = gen
	}
}

type service struct {
	repo    repository.Repository
	db      *gorm.DB
	reducer store.Reducer
	ttl     time.Duration
	logger  *zap.SugaredLogger
	locks   *keyedMutex
	now     func() time.Time
	newID   func() string
}

// New creates a new session service instance.
// A ttl of zero disables expiry.
func New(
	repo repository.Repository,
	db *gorm.DB,
	reducer store.Reducer,
	ttl time.Duration,
	logger *zap.SugaredLogger,
	opts ...Option,
) Service {
	s := &service{
		repo:    repo,
		db:      db,
		reducer: reducer,
		ttl:     ttl,
		logger:  logger,
		locks:   newKeyedMutex(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mount creates a session holding an empty form.
func (s *service) Mount(ctx context.Context) (*sessionModel.Session, error) {
	id := s.newID()
	sess, err := s.repo.Create(ctx, id, inviteModel.NewFormState())
	if err != nil {
		return nil, err
	}
	s.logger.Debugw("session mounted", "session_id", id)
	return sess, nil
}

// Get returns a live session.
func (s *service) Get(ctx context.Context, id string) (*sessionModel.Session, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.expired(sess) {
		return nil, sessionModel.ErrSessionNotFound
	}
	return sess, nil
}

// Dispatch loads, reduces and saves the form of a session in one transaction.
// Dispatches for the same session are applied one at a time.
func (s *service) Dispatch(ctx context.Context, id string, action inviteModel.Action) (inviteModel.FormState, error) {
	if err := validateID(id); err != nil {
		return inviteModel.FormState{}, err
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	var next inviteModel.FormState
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		sess, err := txRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if s.expired(sess) {
			return sessionModel.ErrSessionNotFound
		}

		next = s.reducer.Reduce(sess.State, action)
		return txRepo.SaveState(ctx, id, next)
	})
	if err != nil {
		return inviteModel.FormState{}, err
	}

	s.logger.Debugw("action dispatched",
		"session_id", id,
		"action", action.Type(),
		"team_size", len(next.Team),
		"has_error", next.Error != "",
	)
	return next, nil
}

// Unmount discards a session. Unmounting twice is not an error.
func (s *service) Unmount(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Debugw("session unmounted", "session_id", id)
	return nil
}

// Sweep deletes sessions idle longer than the TTL.
func (s *service) Sweep(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	return s.repo.DeleteIdleSince(ctx, s.now().Add(-s.ttl))
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *service) RunSweeper(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Sweep(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				s.logger.Errorw("session sweep failed", "error", err)
				continue
			}
			if n > 0 {
				s.logger.Infow("expired sessions removed", "count", n)
			}
		}
	}
}

func (s *service) expired(sess *sessionModel.Session) bool {
	return s.ttl > 0 && s.now().Sub(sess.UpdatedAt) > s.ttl
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return sessionModel.ErrInvalidSessionID
	}
	return nil
}
