// Package handler provides HTTP handlers for the invite form.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	inviteModel "github.com/festy23/team_invite/internal/invite/model"
	"github.com/festy23/team_invite/internal/invite/view"
	sessionModel "github.com/festy23/team_invite/internal/session/model"
	"github.com/festy23/team_invite/internal/session/service"
)

// CookieName is the cookie carrying the session id of the HTML view.
const CookieName = "invite_session"

// CookieConfig controls the session cookie.
type CookieConfig struct {
	MaxAge time.Duration
	Secure bool
}

// Handler handles HTTP requests for the invite form.
type Handler struct {
	sessions service.Service
	cookie   CookieConfig
	messages inviteModel.Messages
	logger   *zap.SugaredLogger
}

// Option configures a Handler.
type Option func(*Handler)

// WithMessages sets the feedback strings used to classify submit outcomes.
// They must match the reducer's.
func WithMessages(m inviteModel.Messages) Option {
	return func(h *Handler) {
		h.messages = m
	}
}

// New creates a new invite handler instance.
func New(sessions service.Service, cookie CookieConfig, logger *zap.SugaredLogger, opts ...Option) *Handler {
	h := &Handler{
		sessions: sessions,
		cookie:   cookie,
		messages: inviteModel.DefaultMessages(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Page handles GET /invite.
// It mounts a session when the request carries none.
func (h *Handler) Page(c *gin.Context) {
	sess, err := h.currentSession(c)
	if err != nil {
		h.logger.Errorw("error mounting session", "error", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, view.PageTemplate, view.NewData(sess.State))
}

// Action handles POST /invite/actions.
// It dispatches one action and responds with the re-rendered widget.
func (h *Handler) Action(c *gin.Context) {
	var req inviteModel.ActionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid action")
		return
	}

	state, err := h.dispatchCurrent(c, req.Action())
	if err != nil {
		h.logger.Errorw("error dispatching action", "action", req.Type, "error", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, view.WidgetTemplate, view.NewData(state))
}

// SubmitForm handles POST /invite/submit for clients without script.
func (h *Handler) SubmitForm(c *gin.Context) {
	email := c.PostForm("email")
	h.dispatchAndRedirect(c, inviteModel.ChangeText{Payload: email}, inviteModel.Submit{})
}

// RemoveForm handles POST /invite/remove for clients without script.
func (h *Handler) RemoveForm(c *gin.Context) {
	email := c.PostForm("email")
	h.dispatchAndRedirect(c, inviteModel.Remove{Payload: email})
}

func (h *Handler) dispatchAndRedirect(c *gin.Context, actions ...inviteModel.Action) {
	if _, err := h.dispatchCurrent(c, actions...); err != nil {
		h.logger.Errorw("error dispatching form", "error", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Redirect(http.StatusSeeOther, view.PagePath)
}

// dispatchCurrent dispatches actions in order to the cookie's session.
// When the session expires midway, all actions are replayed on a fresh one.
func (h *Handler) dispatchCurrent(c *gin.Context, actions ...inviteModel.Action) (inviteModel.FormState, error) {
	sess, err := h.currentSession(c)
	if err != nil {
		return inviteModel.FormState{}, err
	}

	state, err := h.dispatchAll(c.Request.Context(), sess, actions)
	if errors.Is(err, sessionModel.ErrSessionNotFound) {
		if sess, err = h.mount(c); err != nil {
			return inviteModel.FormState{}, err
		}
		state, err = h.dispatchAll(c.Request.Context(), sess, actions)
	}
	if err != nil {
		return inviteModel.FormState{}, err
	}
	return state, nil
}

func (h *Handler) dispatchAll(ctx context.Context, sess *sessionModel.Session, actions []inviteModel.Action) (inviteModel.FormState, error) {
	state := sess.State
	for _, action := range actions {
		var err error
		if state, err = h.sessions.Dispatch(ctx, sess.ID, action); err != nil {
			return inviteModel.FormState{}, err
		}
		h.logOutcome(sess.ID, action, state)
	}
	return state, nil
}

// logOutcome logs how a submit ended.
func (h *Handler) logOutcome(id string, action inviteModel.Action, state inviteModel.FormState) {
	if _, ok := action.(inviteModel.Submit); !ok {
		return
	}
	if state.Error == "" {
		h.logger.Debugw("member added", "session_id", id, "team_size", len(state.Team))
		return
	}
	reason := state.Error
	if err := h.messages.Classify(state); err != nil {
		reason = err.Error()
	}
	h.logger.Debugw("submit rejected", "session_id", id, "reason", reason)
}

// currentSession returns the cookie's session, mounting a new one when the
// cookie is missing, malformed or points to an expired session. The cookie
// is re-issued on every use so it lives as long as the idle TTL.
func (h *Handler) currentSession(c *gin.Context) (*sessionModel.Session, error) {
	if id, err := c.Cookie(CookieName); err == nil {
		sess, err := h.sessions.Get(c.Request.Context(), id)
		switch {
		case err == nil:
			h.setCookie(c, sess.ID)
			return sess, nil
		case errors.Is(err, sessionModel.ErrSessionNotFound), errors.Is(err, sessionModel.ErrInvalidSessionID):
		default:
			return nil, err
		}
	}
	return h.mount(c)
}

func (h *Handler) mount(c *gin.Context) (*sessionModel.Session, error) {
	sess, err := h.sessions.Mount(c.Request.Context())
	if err != nil {
		return nil, err
	}
	h.setCookie(c, sess.ID)
	return sess, nil
}

// setCookie writes the session cookie, replacing any set earlier in the
// same response.
func (h *Handler) setCookie(c *gin.Context, id string) {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		Secure:   h.cookie.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	header := c.Writer.Header()
	values := header.Values("Set-Cookie")
	header.Del("Set-Cookie")
	for _, v := range values {
		if !strings.HasPrefix(v, CookieName+"=") {
			header.Add("Set-Cookie", v)
		}
	}
	header.Add("Set-Cookie", cookie.String())
}

// CreateSession handles POST /api/v1/invite/sessions.
func (h *Handler) CreateSession(c *gin.Context) {
	sess, err := h.sessions.Mount(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error mounting session", "error", err)
		internalErrorResponse(c)
		return
	}

	c.JSON(http.StatusCreated, SessionResponse{SessionID: sess.ID, State: sess.State})
}

// GetSession handles GET /api/v1/invite/sessions/:id.
func (h *Handler) GetSession(c *gin.Context) {
	id := c.Param("id")

	sess, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		h.sessionError(c, id, err)
		return
	}

	c.JSON(http.StatusOK, SessionResponse{SessionID: sess.ID, State: sess.State})
}

// DispatchAction handles POST /api/v1/invite/sessions/:id/actions.
// Unknown action types leave the state unchanged.
func (h *Handler) DispatchAction(c *gin.Context) {
	id := c.Param("id")

	var req inviteModel.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	action := req.Action()
	if _, ok := action.(inviteModel.Unrecognized); ok {
		h.logger.Debugw("unrecognized action", "session_id", id, "type", req.Type)
	}

	state, err := h.sessions.Dispatch(c.Request.Context(), id, action)
	if err != nil {
		h.sessionError(c, id, err)
		return
	}
	h.logOutcome(id, action, state)

	c.JSON(http.StatusOK, SessionResponse{SessionID: id, State: state})
}

// DeleteSession handles DELETE /api/v1/invite/sessions/:id.
func (h *Handler) DeleteSession(c *gin.Context) {
	id := c.Param("id")

	if err := h.sessions.Unmount(c.Request.Context(), id); err != nil {
		h.sessionError(c, id, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) sessionError(c *gin.Context, id string, err error) {
	switch {
	case errors.Is(err, sessionModel.ErrInvalidSessionID):
		errorResponse(c, "INVALID_REQUEST", "invalid session id", http.StatusBadRequest)
	case errors.Is(err, sessionModel.ErrSessionNotFound):
		notFoundResponse(c, "session not found")
	case errors.Is(err, context.Canceled):
		c.Abort()
	default:
		h.logger.Errorw("session operation failed", "session_id", id, "error", err)
		internalErrorResponse(c)
	}
}
