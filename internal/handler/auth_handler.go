package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"notaryflow/internal/service"
)

// AuthHandler handles document retrieval authentication.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// AuthenticateRequest is the request body for document retrieval.
type AuthenticateRequest struct {
	ReferenceNumber string `json:"referenceNumber"`
	Day             int    `json:"day"`
	Month           int    `json:"month"`
	Year            int    `json:"year"`
	BypassDateCheck bool   `json:"bypassDateCheck"`
}

// Validate implements request validation.
func (r AuthenticateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ReferenceNumber, validation.Required),
		validation.Field(&r.Day, validation.Required, validation.Min(1), validation.Max(31)),
		validation.Field(&r.Month, validation.Required, validation.Min(1), validation.Max(12)),
		validation.Field(&r.Year, validation.Required, validation.Min(2000), validation.Max(2100)),
	)
}

// Authenticate handles POST /api/v1/auth/retrieve
func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req AuthenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.authService.Authenticate(c.Request.Context(), &service.AuthenticateInput{
		ReferenceNumber: req.ReferenceNumber,
		Day:             req.Day,
		Month:           req.Month,
		Year:            req.Year,
		Bypass:          req.BypassDateCheck,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"document":      result.View,
		"downloadToken": result.DownloadToken,
	})
}
