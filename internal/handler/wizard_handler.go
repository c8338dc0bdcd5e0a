package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"notaryflow/internal/doctype"
	"notaryflow/internal/forms"
	"notaryflow/internal/wizard"
)

// WizardHandler handles the multi-step submission flow endpoints.
type WizardHandler struct {
	session *wizard.Session
}

// NewWizardHandler creates a new WizardHandler.
func NewWizardHandler(session *wizard.Session) *WizardHandler {
	return &WizardHandler{session: session}
}

// sessionID extracts the caller's session identifier. Every wizard route
// requires one; the frontend generates it once per browser session.
func sessionID(c *gin.Context) (string, bool) {
	id := c.GetHeader("X-Session-ID")
	if id == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_SESSION", "X-Session-ID header is required")
		return "", false
	}
	return id, true
}

// typeView is the API shape of a catalog node.
type typeView struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Kind     string     `json:"kind"`
	Children []typeView `json:"children,omitempty"`
}

func toTypeView(n *doctype.Node) typeView {
	v := typeView{ID: n.ID, Title: n.Title, Kind: "leaf"}
	if n.IsBranch() {
		v.Kind = "branch"
		for i := range n.Children {
			v.Children = append(v.Children, toTypeView(&n.Children[i]))
		}
	}
	return v
}

// ListTypes handles GET /api/v1/document-types
func (h *WizardHandler) ListTypes(c *gin.Context) {
	catalog := doctype.Catalog()
	views := make([]typeView, 0, len(catalog))
	for i := range catalog {
		views = append(views, toTypeView(&catalog[i]))
	}
	RespondOK(c, views)
}

// GetState handles GET /api/v1/wizard
func (h *WizardHandler) GetState(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	st, err := h.session.Snapshot(c.Request.Context(), sid)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, st)
}

// Reset handles DELETE /api/v1/wizard
func (h *WizardHandler) Reset(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.session.Reset(c.Request.Context(), sid); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"reset": true})
}

func validStep(step string) bool {
	return step == "1" || step == "2" || step == "3"
}

// GetStep handles GET /api/v1/wizard/steps/:step
func (h *WizardHandler) GetStep(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	step := c.Param("step")
	if !validStep(step) {
		RespondError(c, http.StatusBadRequest, "INVALID_STEP", "step must be 1, 2, or 3")
		return
	}
	fields, err := h.session.GetStep(c.Request.Context(), sid, step)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, fields)
}

// UpdateStep handles PUT /api/v1/wizard/steps/:step
func (h *WizardHandler) UpdateStep(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	step := c.Param("step")
	if !validStep(step) {
		RespondError(c, http.StatusBadRequest, "INVALID_STEP", "step must be 1, 2, or 3")
		return
	}

	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be a string field map")
		return
	}

	st, err := h.session.SetStep(c.Request.Context(), sid, step, fields)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, st)
}

// SelectTypeRequest is the request body for document type selection.
type SelectTypeRequest struct {
	TypeID string `json:"typeId"`
}

// Validate implements request validation.
func (r SelectTypeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TypeID, validation.Required),
	)
}

// SelectType handles POST /api/v1/wizard/document-type
func (h *WizardHandler) SelectType(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var req SelectTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	st, err := h.session.SelectDocumentType(c.Request.Context(), sid, req.TypeID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, st)
}

// Back handles POST /api/v1/wizard/document-type/back
func (h *WizardHandler) Back(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	st, err := h.session.GoBack(c.Request.Context(), sid)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, st)
}

// GetForm handles GET /api/v1/wizard/form
func (h *WizardHandler) GetForm(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	docType, fields, err := h.session.GetDocumentFormData(c.Request.Context(), sid)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"documentType": docType, "fields": fields})
}

// UpdateForm handles PUT /api/v1/wizard/form. The response includes the
// recomputed validation result so the client can gate the proceed action.
func (h *WizardHandler) UpdateForm(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be a string field map")
		return
	}

	st, err := h.session.SetDocumentFormData(c.Request.Context(), sid, fields)
	if err != nil {
		HandleError(c, err)
		return
	}

	result := forms.Result{Valid: true}
	if schema, ok := forms.SchemaFor(st.SelectedType); ok {
		result = schema.Validate(st.DocumentForms[st.SelectedType])
	}
	RespondOK(c, gin.H{"state": st, "validation": result})
}

// ValidateForm handles GET /api/v1/wizard/form/validation
func (h *WizardHandler) ValidateForm(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	docType, fields, err := h.session.GetDocumentFormData(c.Request.Context(), sid)
	if err != nil {
		HandleError(c, err)
		return
	}

	result := forms.Result{Valid: true}
	if schema, ok := forms.SchemaFor(docType); ok {
		result = schema.Validate(fields)
	}
	RespondOK(c, result)
}

// EnterSigningStep handles POST /api/v1/wizard/signing/reset. Landing on the
// signing-method step always discards prior step 3 state and any earlier
// submission id.
func (h *WizardHandler) EnterSigningStep(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	st, err := h.session.ClearSigningState(c.Request.Context(), sid)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, st)
}
