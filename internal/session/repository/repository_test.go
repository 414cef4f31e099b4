package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	inviteModel "github.com/festy23/team_invite/internal/invite/model"
	sessionModel "github.com/festy23/team_invite/internal/session/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&sessionModel.Session{}))
	return db
}

func setupRepo(t *testing.T) Repository {
	t.Helper()
	return New(setupTestDB(t), zaptest.NewLogger(t).Sugar())
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "s1", inviteModel.NewFormState())
	require.NoError(t, err)
	assert.Equal(t, "s1", created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.ID)
	assert.Equal(t, []string{}, got.State.Team)
	assert.Empty(t, got.State.Text)
}

func TestRepository_CreateDuplicate(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "s1", inviteModel.NewFormState())
	require.NoError(t, err)

	_, err = repo.Create(ctx, "s1", inviteModel.NewFormState())
	assert.Error(t, err)
}

func TestRepository_GetNotFound(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, sessionModel.ErrSessionNotFound)

	_, err = repo.GetForUpdate(context.Background(), "missing")
	assert.ErrorIs(t, err, sessionModel.ErrSessionNotFound)
}

func TestRepository_SaveState(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "s1", inviteModel.NewFormState())
	require.NoError(t, err)

	state := inviteModel.FormState{
		Team:    []string{"a@x.com", "b@x.com"},
		Text:    "c@",
		Error:   "",
		Success: "b@x.com added!",
	}
	require.NoError(t, repo.SaveState(ctx, "s1", state))

	got, err := repo.GetForUpdate(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, state, got.State)
}

func TestRepository_SaveStateEmptyAfterRemove(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "s1", inviteModel.FormState{Team: []string{"a@x.com"}, Success: "a@x.com added!"})
	require.NoError(t, err)

	require.NoError(t, repo.SaveState(ctx, "s1", inviteModel.FormState{Team: []string{}}))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, got.State.Team)
	assert.Empty(t, got.State.Success)
}

func TestRepository_SaveStateMissing(t *testing.T) {
	repo := setupRepo(t)

	err := repo.SaveState(context.Background(), "missing", inviteModel.NewFormState())
	assert.ErrorIs(t, err, sessionModel.ErrSessionNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "s1", inviteModel.NewFormState())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, sessionModel.ErrSessionNotFound)

	// deleting again is a no-op
	assert.NoError(t, repo.Delete(ctx, "s1"))
}

func TestRepository_DeleteIdleSince(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db, zaptest.NewLogger(t).Sugar())
	ctx := context.Background()

	_, err := repo.Create(ctx, "old", inviteModel.NewFormState())
	require.NoError(t, err)
	_, err = repo.Create(ctx, "fresh", inviteModel.NewFormState())
	require.NoError(t, err)

	past := time.Now().UTC().Add(-2 * time.Hour)
	require.NoError(t, db.Model(&sessionModel.Session{}).
		Where("id = ?", "old").
		UpdateColumn("updated_at", past).Error)

	n, err := repo.DeleteIdleSince(ctx, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.Get(ctx, "old")
	assert.ErrorIs(t, err, sessionModel.ErrSessionNotFound)
	_, err = repo.Get(ctx, "fresh")
	assert.NoError(t, err)
}

func TestRepository_WithTx(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db, zaptest.NewLogger(t).Sugar())
	ctx := context.Background()

	err := db.Transaction(func(tx *gorm.DB) error {
		txRepo := repo.WithTx(tx)
		if _, err := txRepo.Create(ctx, "s1", inviteModel.NewFormState()); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, sessionModel.ErrSessionNotFound)
}
