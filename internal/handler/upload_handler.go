package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"notaryflow/internal/doctype"
	"notaryflow/internal/service"
	"notaryflow/internal/wizard"
)

// UploadHandler handles custom document uploads for the
// upload-your-document flow.
type UploadHandler struct {
	uploadService service.UploadService
	session       *wizard.Session
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploadService service.UploadService, session *wizard.Session) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, session: session}
}

// Upload handles POST /api/v1/uploads. When the session's selected type is
// the custom document leaf, the stored URL is merged into its form data so
// finalization picks it up without an extra client round-trip.
func (h *UploadHandler) Upload(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.uploadService.Upload(c.Request.Context(), service.UploadInput{
		SessionID: sid,
		File:      file,
		Header:    header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	st, err := h.session.Snapshot(c.Request.Context(), sid)
	if err == nil && st.SelectedType == doctype.CustomDocumentLeaf {
		if _, serr := h.session.SetDocumentFormData(c.Request.Context(), sid, map[string]string{
			"documentUrl":   result.URL,
			"document_name": result.FileName,
		}); serr != nil {
			log.Printf("uploadHandler.Upload: merging document url into session %s: %v", sid, serr)
		}
	}

	RespondCreated(c, result)
}
