// Package http provides gin handlers for agent enrollment and account management.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/fieldguard/internal/agent/http/dto"
	agentUseCase "github.com/allisson/fieldguard/internal/agent/usecase"
	"github.com/allisson/fieldguard/internal/httputil"
	customValidation "github.com/allisson/fieldguard/internal/validation"
)

var errInvalidAgentID = errors.New("invalid agent ID format: must be a valid UUID")

// AgentHandler handles HTTP requests for agent accounts.
type AgentHandler struct {
	agentUseCase agentUseCase.AgentUseCase
	logger       *slog.Logger
}

// NewAgentHandler creates a new agent handler.
func NewAgentHandler(agentUseCase agentUseCase.AgentUseCase, logger *slog.Logger) *AgentHandler {
	return &AgentHandler{
		agentUseCase: agentUseCase,
		logger:       logger,
	}
}

// RegisterRoutes mounts the agent routes on group (usually /v1).
func (h *AgentHandler) RegisterRoutes(group *gin.RouterGroup) {
	agents := group.Group("/agents")
	{
		agents.POST("", h.EnrollHandler)
		agents.GET("", h.ListHandler)
		agents.POST("/verify-credentials", h.VerifyCredentialsHandler)
		agents.GET("/:id", h.GetHandler)
		agents.PUT("/:id", h.UpdateProfileHandler)
		agents.PUT("/:id/pin", h.SetPINHandler)
		agents.POST("/:id/pin/verify", h.VerifyPINHandler)
	}
}

// EnrollHandler enrolls a new agent.
// POST /v1/agents - Returns 201 Created with the agent.
func (h *AgentHandler) EnrollHandler(c *gin.Context) {
	var req dto.EnrollAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	agent, err := h.agentUseCase.Enroll(c.Request.Context(), req.ToEnrollInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapAgentToResponse(agent))
}

// GetHandler retrieves an agent by ID.
// GET /v1/agents/:id
func (h *AgentHandler) GetHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	agent, err := h.agentUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAgentToResponse(agent))
}

// ListHandler lists agents, or looks one up when email or phone is given.
// GET /v1/agents?offset=0&limit=50
// GET /v1/agents?email=... or ?phone=... - Returns the matching agent or 404.
func (h *AgentHandler) ListHandler(c *gin.Context) {
	email, hasEmail := c.GetQuery("email")
	phone, hasPhone := c.GetQuery("phone")

	if hasEmail && hasPhone {
		httputil.HandleBadRequestGin(c, errors.New("use either email or phone, not both"), h.logger)
		return
	}

	if hasEmail || hasPhone {
		lookup := h.agentUseCase.GetByEmail
		value := email
		if hasPhone {
			lookup = h.agentUseCase.GetByPhone
			value = phone
		}

		agent, err := lookup(c.Request.Context(), value)
		if err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
		c.JSON(http.StatusOK, dto.MapAgentToResponse(agent))
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	agents, err := h.agentUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAgentsToListResponse(agents))
}

// UpdateProfileHandler updates profile fields.
// PUT /v1/agents/:id
func (h *AgentHandler) UpdateProfileHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	agent, err := h.agentUseCase.UpdateProfile(c.Request.Context(), id, req.ToUpdateProfileInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAgentToResponse(agent))
}

// SetPINHandler sets or changes the transaction PIN.
// PUT /v1/agents/:id/pin - Returns 204 No Content.
func (h *AgentHandler) SetPINHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.SetPINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.agentUseCase.SetPIN(c.Request.Context(), id, req.CurrentPIN, req.NewPIN); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// VerifyPINHandler checks a transaction PIN.
// POST /v1/agents/:id/pin/verify - Returns 200 OK with {"valid": bool}.
func (h *AgentHandler) VerifyPINHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.VerifyPINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	valid, err := h.agentUseCase.VerifyPIN(c.Request.Context(), id, req.PIN)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyPINResponse{Valid: valid})
}

// VerifyCredentialsHandler checks an email and password pair.
// POST /v1/agents/verify-credentials - Returns 200 OK with the agent or 401.
func (h *AgentHandler) VerifyCredentialsHandler(c *gin.Context) {
	var req dto.VerifyCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	agent, err := h.agentUseCase.VerifyCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAgentToResponse(agent))
}

func (h *AgentHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, errInvalidAgentID, h.logger)
		return uuid.Nil, false
	}
	return id, true
}
