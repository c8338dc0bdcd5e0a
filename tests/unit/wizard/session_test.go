package wizard_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notaryflow/internal/doctype"
	redisstore "notaryflow/internal/session/redis"
	"notaryflow/internal/wizard"
	"notaryflow/mocks"
)

func setupSession(t *testing.T) (*wizard.Session, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := redisstore.NewKVStoreWithClient(client)
	return wizard.NewSession(store, time.Hour), s
}

func TestFreshSessionState(t *testing.T) {
	session, _ := setupSession(t)

	st, err := session.Snapshot(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, st.SelectedType)
	assert.Empty(t, st.SubSelection)
	assert.Empty(t, st.SubmissionID)
	assert.NotNil(t, st.Steps["1"])
	assert.NotNil(t, st.Steps["2"])
	assert.NotNil(t, st.Steps["3"])
}

func TestSetStepMergesFields(t *testing.T) {
	session, _ := setupSession(t)
	ctx := context.Background()

	_, err := session.SetStep(ctx, "sess-1", "1", map[string]string{"firstName": "Ada"})
	require.NoError(t, err)
	st, err := session.SetStep(ctx, "sess-1", "1", map[string]string{"lastName": "Lovelace"})
	require.NoError(t, err)

	assert.Equal(t, "Ada", st.Steps["1"]["firstName"])
	assert.Equal(t, "Lovelace", st.Steps["1"]["lastName"])

	fields, err := session.GetStep(ctx, "sess-1", "1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", fields["firstName"])
}

func TestSessionsAreIsolated(t *testing.T) {
	session, _ := setupSession(t)
	ctx := context.Background()

	_, err := session.SetStep(ctx, "sess-a", "1", map[string]string{"firstName": "Ada"})
	require.NoError(t, err)

	fields, err := session.GetStep(ctx, "sess-b", "1")
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestSelectBranchEntersSubSelection(t *testing.T) {
	session, _ := setupSession(t)
	ctx := context.Background()

	st, err := session.SelectDocumentType(ctx, "sess-1", "lease-agreement")
	require.NoError(t, err)
	assert.Equal(t, "lease-agreement", st.SubSelection)
	assert.Empty(t, st.SelectedType)

	// Picking a concrete child commits it and exits sub-selection.
	st, err = session.SelectDocumentType(ctx, "sess-1", "residential-lease-agreement")
	require.NoError(t, err)
	assert.Equal(t, "residential-lease-agreement", st.SelectedType)
	assert.Empty(t, st.SubSelection)
	assert.Equal(t, "residential-lease-agreement", st.Steps["2"]["documentType"])
	assert.Equal(t, "lease-agreement", st.Steps["2"]["category"])
}

func TestSelectLeafLoadsSchemaDefaults(t *testing.T) {
	session, _ := setupSession(t)
	ctx := context.Background()

	st, err := session.SelectDocumentType(ctx, "sess-1", "affidavit")
	require.NoError(t, err)
	fields := st.DocumentForms["affidavit"]
	require.NotNil(t, fields)
	_, ok := fields["affiant_name"]
	assert.True(t, ok)
	assert.Empty(t, st.Steps["2"]["category"])
}

func TestSelectUnknownType(t *testing.T) {
	session, _ := setupSession(t)

	_, err := session.SelectDocumentType(context.Background(), "sess-1", "mortgage-deed")
	assert.Error(t, err)
}

func TestGoBackExitsSubSelection(t *testing.T) {
	session, _ := setupSession(t)
	ctx := context.Background()

	_, err := session.SelectDocumentType(ctx, "sess-1", "power-of-attorney")
	require.NoError(t, err)

	st, err := session.GoBack(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, st.SubSelection)

	// Going back at top level is a no-op.
	st, err = session.GoBack(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, st.SubSelection)
}

func TestFormDataIsolatedPerType(t *testing.T) {
	session, _ := setupSession(t)
	ctx := context.Background()

	_, err := session.SelectDocumentType(ctx, "sess-1", "affidavit")
	require.NoError(t, err)
	_, err = session.SetDocumentFormData(ctx, "sess-1", map[string]string{"affiant_name": "Ada"})
	require.NoError(t, err)

	// Switch type, fill it, switch back: the affidavit values survive.
	_, err = session.SelectDocumentType(ctx, "sess-1", "bill-of-sale")
	require.NoError(t, err)
	_, err = session.SetDocumentFormData(ctx, "sess-1", map[string]string{"seller_name": "Bob"})
	require.NoError(t, err)

	st, err := session.SelectDocumentType(ctx, "sess-1", "affidavit")
	require.NoError(t, err)
	assert.Equal(t, "Ada", st.DocumentForms["affidavit"]["affiant_name"])
	assert.Equal(t, "Bob", st.DocumentForms["bill-of-sale"]["seller_name"])

	docType, fields, err := session.GetDocumentFormData(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "affidavit", docType)
	assert.Equal(t, "Ada", fields["affiant_name"])
}

func TestSetFormDataWithoutSelection(t *testing.T) {
	session, _ := setupSession(t)

	_, err := session.SetDocumentFormData(context.Background(), "sess-1", map[string]string{"x": "y"})
	assert.Error(t, err)
}

func TestClearSigningState(t *testing.T) {
	session, _ := setupSession(t)
	ctx := context.Background()

	_, err := session.SetStep(ctx, "sess-1", "3", map[string]string{"signingOption": "esign"})
	require.NoError(t, err)
	require.NoError(t, session.SetSubmissionID(ctx, "sess-1", "prev-submission"))

	st, err := session.ClearSigningState(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, st.Steps["3"])
	assert.Empty(t, st.SubmissionID)

	// Other steps are untouched.
	_, err = session.SetStep(ctx, "sess-1", "1", map[string]string{"firstName": "Ada"})
	require.NoError(t, err)
	st, err = session.ClearSigningState(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", st.Steps["1"]["firstName"])
}

func TestTransientStoreFailureDoesNotWipeState(t *testing.T) {
	store := new(mocks.MockKVStore)
	session := wizard.NewSession(store, time.Hour)
	ctx := context.Background()

	stored := `{"steps":{"1":{"firstName":"Ada"},"2":{},"3":{}},"document_forms":{},"selected_type":"affidavit"}`

	// A read blip must fail the operation, not replace the stored state.
	store.On("Get", mock.Anything, "wizard:sess-1").
		Return("", errors.New("connection refused")).Once()

	_, err := session.SetStep(ctx, "sess-1", "3", map[string]string{"signingOption": "esign"})
	require.Error(t, err)
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// Once the store recovers, the update merges into the prior state.
	store.On("Get", mock.Anything, "wizard:sess-1").Return(stored, nil)
	store.On("Set", mock.Anything, "wizard:sess-1", mock.MatchedBy(func(v string) bool {
		return strings.Contains(v, `"firstName":"Ada"`) &&
			strings.Contains(v, `"selected_type":"affidavit"`) &&
			strings.Contains(v, `"signingOption":"esign"`)
	}), time.Hour).Return(nil)

	st, err := session.SetStep(ctx, "sess-1", "3", map[string]string{"signingOption": "esign"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", st.Steps["1"]["firstName"])
	assert.Equal(t, "affidavit", st.SelectedType)
	store.AssertExpectations(t)
}

func TestCorruptStateYieldsFreshSession(t *testing.T) {
	session, mr := setupSession(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("wizard:sess-1", "{not json"))

	st, err := session.Snapshot(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, st.SelectedType)
	assert.NotNil(t, st.Steps["1"])
}

func TestLegacyBranchSelectionRehydrates(t *testing.T) {
	session, mr := setupSession(t)
	ctx := context.Background()

	// Older payloads stored a branch id as the selected type.
	require.NoError(t, mr.Set("wizard:sess-1",
		`{"steps":{"1":{}},"selected_type":"lease-agreement"}`))

	st, err := session.Snapshot(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, st.SelectedType)
	assert.Equal(t, "lease-agreement", st.SubSelection)

	_, kind, ok := doctype.Resolve(st.SubSelection)
	require.True(t, ok)
	assert.Equal(t, doctype.KindBranch, kind)
}

func TestResetDeletesState(t *testing.T) {
	session, _ := setupSession(t)
	ctx := context.Background()

	_, err := session.SetStep(ctx, "sess-1", "1", map[string]string{"firstName": "Ada"})
	require.NoError(t, err)
	require.NoError(t, session.Reset(ctx, "sess-1"))

	st, err := session.Snapshot(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, st.Steps["1"])
}
