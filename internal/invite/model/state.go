// Package model provides the form state and actions of the invite widget.
package model

import (
	"encoding/json"
	"slices"
)

// FormState is an immutable snapshot of the invite form.
// A new value is produced for every dispatched action.
type FormState struct {
	// Team holds accepted emails in commit order, without duplicates.
	Team []string `json:"team"`
	// Text is the current uncommitted input.
	Text string `json:"text"`
	// Error is the current validation message, empty when none.
	Error string `json:"error"`
	// Success is the current confirmation message, empty when none.
	Success string `json:"success"`
}

// NewFormState returns the state of a freshly mounted form.
func NewFormState() FormState {
	return FormState{Team: []string{}}
}

// Clone returns a copy of s that shares no memory with it.
func (s FormState) Clone() FormState {
	c := s
	c.Team = slices.Clone(s.Team)
	if c.Team == nil {
		c.Team = []string{}
	}
	return c
}

// Contains reports whether email is already in the team.
func (s FormState) Contains(email string) bool {
	return slices.Contains(s.Team, email)
}

// MarshalJSON encodes Team as an empty array instead of null.
func (s FormState) MarshalJSON() ([]byte, error) {
	type alias FormState
	a := alias(s)
	if a.Team == nil {
		a.Team = []string{}
	}
	return json.Marshal(a)
}
