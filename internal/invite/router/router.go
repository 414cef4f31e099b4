// Package router provides invite module routes registration.
package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/team_invite/internal/invite/handler"
	"github.com/festy23/team_invite/internal/invite/view"
	"github.com/festy23/team_invite/internal/session/service"
)

// RegisterRoutes registers the HTML view and the JSON dispatch API.
func RegisterRoutes(
	r *gin.Engine,
	sessions service.Service,
	cookie handler.CookieConfig,
	logger *zap.SugaredLogger,
	opts ...handler.Option,
) error {
	tmpl, err := view.Templates()
	if err != nil {
		return fmt.Errorf("failed to parse invite templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	h := handler.New(sessions, cookie, logger, opts...)

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, view.PagePath)
	})
	r.GET(view.PagePath, h.Page)
	r.POST(view.ActionsPath, h.Action)
	r.POST(view.SubmitPath, h.SubmitForm)
	r.POST(view.RemovePath, h.RemoveForm)

	api := r.Group("/api/v1/invite")
	api.POST("/sessions", h.CreateSession)
	api.GET("/sessions/:id", h.GetSession)
	api.POST("/sessions/:id/actions", h.DispatchAction)
	api.DELETE("/sessions/:id", h.DeleteSession)

	return nil
}
