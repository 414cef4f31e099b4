// Package model provides the session entity holding a mounted form.
package model

import (
	"errors"
	"time"

	"gorm.io/gorm"

	inviteModel "github.com/festy23/team_invite/internal/invite/model"
)

var (
	// ErrSessionNotFound indicates that the session does not exist or has expired.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidSessionID indicates a malformed session id.
	ErrInvalidSessionID = errors.New("invalid session id")
)

// Session is one mounted invite form.
// Matches the invite_sessions table schema.
type Session struct {
	ID        string                `gorm:"primaryKey;column:id;type:varchar(36)" json:"session_id"`
	State     inviteModel.FormState `gorm:"column:state;type:text;not null;serializer:json" json:"state"`
	CreatedAt time.Time             `gorm:"column:created_at;not null" json:"-"`
	UpdatedAt time.Time             `gorm:"column:updated_at;not null;index" json:"-"`
}

// TableName specifies the table name for GORM.
func (Session) TableName() string {
	return "invite_sessions"
}

// BeforeUpdate refreshes the UpdatedAt timestamp before saving.
func (s *Session) BeforeUpdate(tx *gorm.DB) error {
	s.UpdatedAt = time.Now().UTC()
	return nil
}
