package model

import "strings"

// ActionType identifies an action kind on the wire.
type ActionType string

const (
	// ActionChange is the wire name of ChangeText.
	ActionChange ActionType = "change"
	// ActionSubmit is the wire name of Submit.
	ActionSubmit ActionType = "submit"
	// ActionRemove is the wire name of Remove.
	ActionRemove ActionType = "remove"
)

// Action describes a user event consumed by the reducer.
type Action interface {
	Type() ActionType
}

// ChangeText replaces the input text.
type ChangeText struct {
	Payload string
}

// Submit commits the input text into the team.
type Submit struct{}

// Remove deletes an email from the team.
type Remove struct {
	Payload string
}

// Unrecognized is an action of unknown type. The reducer ignores it.
type Unrecognized struct {
	Kind string
}

// Type implements Action.
func (ChangeText) Type() ActionType { return ActionChange }

// Type implements Action.
func (Submit) Type() ActionType { return ActionSubmit }

// Type implements Action.
func (Remove) Type() ActionType { return ActionRemove }

// Type implements Action.
func (a Unrecognized) Type() ActionType { return ActionType(a.Kind) }

// ActionRequest is the wire form of an action.
type ActionRequest struct {
	Type    string `json:"type" form:"type" binding:"required"`
	Payload string `json:"payload" form:"payload"`
}

// ParseAction converts a wire action into an Action.
// Unknown types yield Unrecognized rather than an error.
func ParseAction(kind, payload string) Action {
	switch ActionType(strings.ToLower(strings.TrimSpace(kind))) {
	case ActionChange:
		return ChangeText{Payload: payload}
	case ActionSubmit:
		return Submit{}
	case ActionRemove:
		return Remove{Payload: payload}
	default:
		return Unrecognized{Kind: kind}
	}
}

// Action converts the request into an Action.
func (r ActionRequest) Action() Action {
	return ParseAction(r.Type, r.Payload)
}
