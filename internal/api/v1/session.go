package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/shipwise/shipwise/internal/api/dto"
	"github.com/shipwise/shipwise/internal/domain/session"
	ierr "github.com/shipwise/shipwise/internal/errors"
	"github.com/shipwise/shipwise/internal/logger"
	"github.com/shipwise/shipwise/internal/service"
)

type SessionHandler struct {
	service service.SessionService
	log     *logger.Logger
}

func NewSessionHandler(service service.SessionService, log *logger.Logger) *SessionHandler {
	return &SessionHandler{service: service, log: log}
}

func (h *SessionHandler) CreateSession(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	sess, err := h.service.CreateSession(ctx, req.ToSession())
	if err != nil {
		h.log.Error("Failed to create session", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.SessionResponse{Session: sess})
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	ctx := c.Request.Context()

	sess, err := h.service.GetSession(ctx, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{Session: sess})
}

func (h *SessionHandler) ListSessions(c *gin.Context) {
	ctx := c.Request.Context()

	sessions, err := h.service.ListSessions(ctx)
	if err != nil {
		c.Error(err)
		return
	}

	response := dto.ListSessionsResponse{
		Sessions: lo.Map(sessions, func(s *session.Session, _ int) dto.SessionResponse {
			return dto.SessionResponse{Session: s}
		}),
		Total: len(sessions),
	}
	c.JSON(http.StatusOK, response)
}

func (h *SessionHandler) UpdateSession(c *gin.Context) {
	ctx := c.Request.Context()
	var sess session.Session
	if err := c.ShouldBindJSON(&sess); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	sess.ID = c.Param("id")

	updated, err := h.service.UpdateSession(ctx, &sess)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{Session: updated})
}

func (h *SessionHandler) DeleteSession(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.service.DeleteSession(ctx, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *SessionHandler) ConvertSession(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.ConvertSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	sess, err := h.service.ConvertSession(ctx, c.Param("id"), req.RateMap(), req.TargetCurrency)
	if err != nil {
		h.log.Error("Failed to convert session", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{Session: sess})
}

func (h *SessionHandler) ProvisionDefaultRules(c *gin.Context) {
	ctx := c.Request.Context()

	sess, result, err := h.service.ProvisionDefaultRules(ctx, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProvisionResponse(sess, result))
}
