package handlers

import (
	"net/http"

	request "cotacao_service/internal/adapter/http/dto/request"
	response "cotacao_service/internal/adapter/http/dto/response"
	"cotacao_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// WorkflowHandler exposes the approval workflow.
type WorkflowHandler struct {
	usecase usecase.IWorkflowUseCase
	logger  *logrus.Logger
}

func NewWorkflowHandler(uc usecase.IWorkflowUseCase, logger *logrus.Logger) *WorkflowHandler {
	return &WorkflowHandler{usecase: uc, logger: logger}
}

func (h *WorkflowHandler) Transition(c *gin.Context) {
	var payload request.TransitionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}
	decision, err := payload.ToDecision()
	if err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}

	res, err := h.usecase.Transition(c.Request.Context(), actorFrom(c), c.Param("id"), decision)
	if err != nil {
		writeError(c, h.logger, "Transition", err)
		return
	}
	c.JSON(http.StatusOK, response.FromTransitionResult(res))
}

func (h *WorkflowHandler) AllowedActions(c *gin.Context) {
	id := c.Param("id")
	actions, err := h.usecase.AllowedActions(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		writeError(c, h.logger, "AllowedActions", err)
		return
	}
	c.JSON(http.StatusOK, response.FromAllowedActions(id, actions))
}
