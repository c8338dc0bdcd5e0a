package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"notaryflow/internal/domain"
	"notaryflow/internal/handler"
	"notaryflow/internal/service"
	"notaryflow/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postJSON(h gin.HandlerFunc, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h(c)
	return w
}

func TestAuthHandler_Authenticate_Success(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(mockAuth)

	docID := uuid.New()
	mockAuth.On("Authenticate", mock.Anything, &service.AuthenticateInput{
		ReferenceNumber: "NF-AUTH000001",
		Day:             14, Month: 11, Year: 2023,
	}).Return(&service.AuthResult{
		View: &domain.AuthenticatedDocumentView{
			DocumentID:      docID,
			ReferenceNumber: "NF-AUTH000001",
			DateSigned:      "14-11-2023",
		},
		DownloadToken: "token-xyz",
	}, nil)

	w := postJSON(h.Authenticate, "/api/v1/auth/retrieve", map[string]interface{}{
		"referenceNumber": "NF-AUTH000001",
		"day":             14,
		"month":           11,
		"year":            2023,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockAuth.AssertExpectations(t)
}

func TestAuthHandler_Authenticate_DateMismatch(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(mockAuth)

	mockAuth.On("Authenticate", mock.Anything, mock.AnythingOfType("*service.AuthenticateInput")).
		Return(nil, &domain.DateMismatchError{Expected: "14-11-2023"})

	w := postJSON(h.Authenticate, "/api/v1/auth/retrieve", map[string]interface{}{
		"referenceNumber": "NF-AUTH000001",
		"day":             15,
		"month":           11,
		"year":            2023,
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "DATE_MISMATCH", resp.Error.Code)
}

func TestAuthHandler_Authenticate_NotFound(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(mockAuth)

	mockAuth.On("Authenticate", mock.Anything, mock.AnythingOfType("*service.AuthenticateInput")).
		Return(nil, domain.ErrNotFound)

	w := postJSON(h.Authenticate, "/api/v1/auth/retrieve", map[string]interface{}{
		"referenceNumber": "NF-MISSING999",
		"day":             14,
		"month":           11,
		"year":            2023,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthHandler_Authenticate_DateUnavailable(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(mockAuth)

	mockAuth.On("Authenticate", mock.Anything, mock.AnythingOfType("*service.AuthenticateInput")).
		Return(nil, domain.ErrDateUnavailable)

	w := postJSON(h.Authenticate, "/api/v1/auth/retrieve", map[string]interface{}{
		"referenceNumber": "NF-AUTH000001",
		"day":             14,
		"month":           11,
		"year":            2023,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAuthHandler_Authenticate_RejectsBadInput(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(mockAuth)

	cases := []map[string]interface{}{
		{"day": 14, "month": 11, "year": 2023},                              // no reference
		{"referenceNumber": "NF-X", "day": 32, "month": 11, "year": 2023},   // day out of range
		{"referenceNumber": "NF-X", "day": 14, "month": 13, "year": 2023},   // month out of range
		{"referenceNumber": "NF-X", "day": 14, "month": 11, "year": 1999},   // year out of range
	}

	for _, payload := range cases {
		w := postJSON(h.Authenticate, "/api/v1/auth/retrieve", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code, "payload %v", payload)
	}

	mockAuth.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
}
