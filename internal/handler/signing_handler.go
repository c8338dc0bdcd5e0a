package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"notaryflow/internal/service"
)

// SigningHandler handles the e-sign execution endpoint.
type SigningHandler struct {
	signingService service.SigningService
}

// NewSigningHandler creates a new SigningHandler.
func NewSigningHandler(signingService service.SigningService) *SigningHandler {
	return &SigningHandler{signingService: signingService}
}

// Sign handles POST /api/v1/submissions/:id/sign
func (h *SigningHandler) Sign(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid submission id")
		return
	}

	sub, err := h.signingService.Sign(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sub)
}
