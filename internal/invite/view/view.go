// Package view renders the invite form as HTML.
package view

import (
	"embed"
	"html/template"

	"github.com/festy23/team_invite/internal/invite/model"
)

// Template names.
const (
	PageTemplate   = "page"
	WidgetTemplate = "widget"
)

// Paths used by the rendered forms and script.
const (
	PagePath    = "/invite"
	ActionsPath = "/invite/actions"
	SubmitPath  = "/invite/submit"
	RemovePath  = "/invite/remove"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Templates parses the embedded templates.
func Templates() (*template.Template, error) {
	return template.ParseFS(templates, "templates/*.tmpl")
}

// Data is the view model of the invite form.
type Data struct {
	State          model.FormState
	SubmitDisabled bool
	InputAlert     bool
	// InputAdded marks the render right after a member was committed.
	InputAdded     bool
	ActionsPath    string
	SubmitPath     string
	RemovePath     string
}

// NewData derives the view model from state.
func NewData(state model.FormState) Data {
	return Data{
		State:          state,
		SubmitDisabled: state.Text == "",
		InputAlert:     state.Error != "",
		InputAdded:     state.Success != "",
		ActionsPath:    ActionsPath,
		SubmitPath:     SubmitPath,
		RemovePath:     RemovePath,
	}
}
