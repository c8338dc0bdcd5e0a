package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"notaryflow/internal/domain"
	"notaryflow/internal/middleware"
	"notaryflow/internal/service"
)

// DownloadHandler serves artifact download URLs for authenticated sessions.
type DownloadHandler struct {
	signingService service.SigningService
	uploadService  service.UploadService
}

// NewDownloadHandler creates a new DownloadHandler.
func NewDownloadHandler(signingService service.SigningService, uploadService service.UploadService) *DownloadHandler {
	return &DownloadHandler{signingService: signingService, uploadService: uploadService}
}

// Download handles GET /api/v1/documents/download. The submission is
// identified by the download token, never by a client-supplied id. Canonical
// s3:// URLs are exchanged for presigned ones.
func (h *DownloadHandler) Download(c *gin.Context) {
	id, ok := middleware.GetAuthorizedSubmissionID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing download authorization")
		return
	}

	version := domain.DocumentVersion(c.DefaultQuery("version", string(domain.DocumentVersionStamped)))

	url, err := h.signingService.DocumentURL(c.Request.Context(), id, version)
	if err != nil {
		HandleError(c, err)
		return
	}

	downloadURL, err := h.uploadService.PresignURL(c.Request.Context(), url)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": downloadURL, "version": version})
}
