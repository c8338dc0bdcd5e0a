package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"notaryflow/internal/domain"
	"notaryflow/internal/service"
)

// SubmissionHandler handles submission finalization endpoints.
type SubmissionHandler struct {
	submissionService service.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(submissionService service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// FinalizeESign handles POST /api/v1/submissions/esign
func (h *SubmissionHandler) FinalizeESign(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	sub, err := h.submissionService.CreateESign(c.Request.Context(), sid)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, sub)
}

// FinalizeNotaryRequest is the request body for the notary pathway.
type FinalizeNotaryRequest struct {
	Timezone string `json:"timezone"`
}

// FinalizeNotary handles POST /api/v1/submissions/notary
func (h *SubmissionHandler) FinalizeNotary(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	// The body is optional; the timezone is the only field it can carry.
	var req FinalizeNotaryRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
			return
		}
	}

	meta := domain.DeviceMeta{
		Timezone:  req.Timezone,
		UserAgent: c.Request.UserAgent(),
	}

	info, err := h.submissionService.CreateNotary(c.Request.Context(), sid, meta)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, info)
}

// Get handles GET /api/v1/submissions/:id
func (h *SubmissionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid submission id")
		return
	}

	sub, err := h.submissionService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sub)
}
