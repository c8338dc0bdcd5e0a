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
	"notaryflow/mocks"
)

func postWithSession(h gin.HandlerFunc, path, sessionID string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, path, nil)
	if sessionID != "" {
		c.Request.Header.Set("X-Session-ID", sessionID)
	}
	h(c)
	return w
}

func TestSubmissionHandler_FinalizeESign_Success(t *testing.T) {
	svc := new(mocks.MockSubmissionService)
	h := handler.NewSubmissionHandler(svc)

	sub := &domain.SubmissionRecord{
		ID:              uuid.New(),
		ReferenceNumber: "NF-HANDLER001",
	}
	svc.On("CreateESign", mock.Anything, "sess-1").Return(sub, nil)

	w := postWithSession(h.FinalizeESign, "/api/v1/submissions/esign", "sess-1")

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestSubmissionHandler_FinalizeESign_MissingSession(t *testing.T) {
	svc := new(mocks.MockSubmissionService)
	h := handler.NewSubmissionHandler(svc)

	w := postWithSession(h.FinalizeESign, "/api/v1/submissions/esign", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CreateESign", mock.Anything, mock.Anything)
}

func TestSubmissionHandler_FinalizeESign_ValidationError(t *testing.T) {
	svc := new(mocks.MockSubmissionService)
	h := handler.NewSubmissionHandler(svc)

	verr := &domain.ValidationError{}
	verr.Add(domain.StepSigningOption, "signingOption")
	svc.On("CreateESign", mock.Anything, "sess-1").Return(nil, verr)

	w := postWithSession(h.FinalizeESign, "/api/v1/submissions/esign", "sess-1")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "step3: missing signingOption")
}

func TestSubmissionHandler_FinalizeNotary_BodylessRequest(t *testing.T) {
	svc := new(mocks.MockSubmissionService)
	h := handler.NewSubmissionHandler(svc)

	info := &domain.NotarySessionInfo{ID: "rec-123", MeetingID: "meet-456", ReferenceNumber: "NF-NOTARY9999"}
	svc.On("CreateNotary", mock.Anything, "sess-1", domain.DeviceMeta{}).Return(info, nil)

	// The scheduling endpoint must accept a POST with no body at all.
	w := postWithSession(h.FinalizeNotary, "/api/v1/submissions/notary", "sess-1")

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestSubmissionHandler_FinalizeNotary_TimezoneForwarded(t *testing.T) {
	svc := new(mocks.MockSubmissionService)
	h := handler.NewSubmissionHandler(svc)

	info := &domain.NotarySessionInfo{ID: "rec-123", MeetingID: "meet-456", ReferenceNumber: "NF-NOTARY9999"}
	svc.On("CreateNotary", mock.Anything, "sess-1", domain.DeviceMeta{Timezone: "America/New_York"}).
		Return(info, nil)

	body, _ := json.Marshal(map[string]string{"timezone": "America/New_York"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/submissions/notary", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.Header.Set("X-Session-ID", "sess-1")
	h.FinalizeNotary(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestSubmissionHandler_FinalizeNotary_CollaboratorDown(t *testing.T) {
	svc := new(mocks.MockSubmissionService)
	h := handler.NewSubmissionHandler(svc)

	svc.On("CreateNotary", mock.Anything, "sess-1", mock.AnythingOfType("domain.DeviceMeta")).
		Return(nil, domain.ErrCollaborator)

	w := postWithSession(h.FinalizeNotary, "/api/v1/submissions/notary", "sess-1")

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "COLLABORATOR_ERROR", resp.Error.Code)
}

func TestSubmissionHandler_Get_InvalidID(t *testing.T) {
	svc := new(mocks.MockSubmissionService)
	h := handler.NewSubmissionHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/submissions/not-a-uuid", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.Get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
