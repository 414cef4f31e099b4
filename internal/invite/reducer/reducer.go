// Package reducer provides the state transition function of the invite form.
package reducer

import (
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/festy23/team_invite/internal/invite/model"
)

// Guard inspects the text about to be committed and returns a validation
// error to reject it. Guards run after the empty and duplicate checks.
type Guard func(text string) error

// Reducer computes the next FormState from the current one and an action.
// It is safe for concurrent use; it holds no mutable state.
type Reducer struct {
	messages model.Messages
	guards   []Guard
}

// Option configures a Reducer.
type Option func(*Reducer)

// WithMessages replaces the feedback strings.
func WithMessages(m model.Messages) Option {
	return func(r *Reducer) {
		r.messages = m
	}
}

// WithGuard appends a commit guard.
func WithGuard(g Guard) Option {
	return func(r *Reducer) {
		if g != nil {
			r.guards = append(r.guards, g)
		}
	}
}

// WithFormatCheck enables the email format guard.
func WithFormatCheck() Option {
	return WithGuard(FormatGuard(validator.New()))
}

// New creates a reducer with English messages and no guards.
func New(opts ...Option) *Reducer {
	r := &Reducer{messages: model.DefaultMessages()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultReducer = New()

// Reduce applies action to state using the default reducer.
func Reduce(state model.FormState, action model.Action) model.FormState {
	return defaultReducer.Reduce(state, action)
}

// Messages returns the feedback strings used by r.
func (r *Reducer) Messages() model.Messages {
	return r.messages
}

// Reduce returns the state following action. It never mutates state.
func (r *Reducer) Reduce(state model.FormState, action model.Action) model.FormState {
	switch a := action.(type) {
	case model.ChangeText:
		next := state.Clone()
		next.Text = a.Payload
		next.Error = ""
		next.Success = ""
		return next

	case model.Submit:
		return r.submit(state)

	case model.Remove:
		next := state.Clone()
		next.Team = slices.DeleteFunc(next.Team, func(e string) bool { return e == a.Payload })
		next.Error = ""
		next.Success = ""
		return next

	default:
		return state
	}
}

func (r *Reducer) submit(state model.FormState) model.FormState {
	next := state.Clone()
	next.Error = ""
	next.Success = ""

	if err := r.check(state); err != nil {
		next.Error = r.messages.For(err)
		if next.Error == "" {
			next.Error = err.Error()
		}
		return next
	}

	next.Team = append(next.Team, state.Text)
	next.Success = r.messages.AddedFor(state.Text)
	next.Text = ""
	return next
}

// check returns the validation error that blocks committing state.Text.
func (r *Reducer) check(state model.FormState) error {
	if strings.TrimSpace(state.Text) == "" {
		return model.ErrEmptySubmission
	}
	if state.Contains(state.Text) {
		return model.ErrDuplicateEntry
	}
	for _, g := range r.guards {
		if err := g(state.Text); err != nil {
			return err
		}
	}
	return nil
}
