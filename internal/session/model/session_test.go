package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inviteModel "github.com/festy23/team_invite/internal/invite/model"
)

func TestSession_TableName(t *testing.T) {
	assert.Equal(t, "invite_sessions", Session{}.TableName())
}

func TestSession_JSON(t *testing.T) {
	s := Session{
		ID:        "0f8fad5b-d9cb-469f-a165-70867728950e",
		State:     inviteModel.FormState{Team: []string{"a@x.com"}},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"session_id":"0f8fad5b-d9cb-469f-a165-70867728950e","state":{"team":["a@x.com"],"text":"","error":"","success":""}}`,
		string(data))
}

func TestSession_BeforeUpdate(t *testing.T) {
	s := &Session{UpdatedAt: time.Unix(0, 0)}

	require.NoError(t, s.BeforeUpdate(nil))
	assert.WithinDuration(t, time.Now(), s.UpdatedAt, time.Second)
}
