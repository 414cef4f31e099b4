// Package repository provides data access layer for invite sessions.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	inviteModel "github.com/festy23/team_invite/internal/invite/model"
	sessionModel "github.com/festy23/team_invite/internal/session/model"
)

// Repository defines the interface for session data access operations.
type Repository interface {
	// Create inserts a new session.
	Create(ctx context.Context, id string, state inviteModel.FormState) (*sessionModel.Session, error)

	// Get finds a session by id.
	Get(ctx context.Context, id string) (*sessionModel.Session, error)

	// GetForUpdate finds a session by id and locks its row where the driver supports it.
	GetForUpdate(ctx context.Context, id string) (*sessionModel.Session, error)

	// SaveState replaces the stored snapshot of a session.
	SaveState(ctx context.Context, id string, state inviteModel.FormState) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteIdleSince removes sessions not updated since cutoff.
	DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error)

	// WithTx returns a repository bound to tx.
	WithTx(tx *gorm.DB) Repository
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new session repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx, logger: r.logger}
}

// Create inserts a new session.
func (r *repository) Create(ctx context.Context, id string, state inviteModel.FormState) (*sessionModel.Session, error) {
	now := time.Now().UTC()
	s := &sessionModel.Session{
		ID:        id,
		State:     state.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return s, nil
}

// Get finds a session by id.
func (r *repository) Get(ctx context.Context, id string) (*sessionModel.Session, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate finds a session by id with a row lock.
func (r *repository) GetForUpdate(ctx context.Context, id string) (*sessionModel.Session, error) {
	tx := r.db.WithContext(ctx)
	if tx.Dialector.Name() == "postgres" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.get(tx, id)
}

func (r *repository) get(tx *gorm.DB, id string) (*sessionModel.Session, error) {
	var s sessionModel.Session
	err := tx.Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sessionModel.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

// SaveState replaces the stored snapshot of a session.
func (r *repository) SaveState(ctx context.Context, id string, state inviteModel.FormState) error {
	res := r.db.WithContext(ctx).
		Model(&sessionModel.Session{ID: id}).
		Select("state", "updated_at").
		Updates(&sessionModel.Session{State: state.Clone(), UpdatedAt: time.Now().UTC()})
	if res.Error != nil {
		return fmt.Errorf("save session state: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return sessionModel.ErrSessionNotFound
	}
	return nil
}

// Delete removes a session.
func (r *repository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&sessionModel.Session{}).Error
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteIdleSince removes sessions not updated since cutoff.
func (r *repository) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("updated_at < ?", cutoff.UTC()).
		Delete(&sessionModel.Session{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete idle sessions: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		r.logger.Debugw("idle sessions deleted", "count", res.RowsAffected, "cutoff", cutoff)
	}
	return res.RowsAffected, nil
}
