package doctype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"notaryflow/internal/doctype"
)

func TestResolveLeaf(t *testing.T) {
	node, kind, ok := doctype.Resolve("affidavit")
	assert.True(t, ok)
	assert.Equal(t, doctype.KindLeaf, kind)
	assert.Equal(t, "Affidavit", node.Title)
	assert.Empty(t, doctype.ParentBranch("affidavit"))
}

func TestResolveBranch(t *testing.T) {
	node, kind, ok := doctype.Resolve("lease-agreement")
	assert.True(t, ok)
	assert.Equal(t, doctype.KindBranch, kind)
	assert.Len(t, node.Children, 2)
}

func TestResolveBranchChild(t *testing.T) {
	_, kind, ok := doctype.Resolve("residential-lease-agreement")
	assert.True(t, ok)
	assert.Equal(t, doctype.KindLeaf, kind)
	assert.Equal(t, "lease-agreement", doctype.ParentBranch("residential-lease-agreement"))
}

func TestResolveUnknown(t *testing.T) {
	_, _, ok := doctype.Resolve("mortgage-deed")
	assert.False(t, ok)
}

func TestLeafIDsExcludeBranches(t *testing.T) {
	ids := doctype.LeafIDs()
	assert.NotEmpty(t, ids)
	for _, id := range ids {
		_, kind, ok := doctype.Resolve(id)
		assert.True(t, ok, id)
		assert.Equal(t, doctype.KindLeaf, kind, id)
	}
	assert.NotContains(t, ids, "lease-agreement")
	assert.NotContains(t, ids, "power-of-attorney")
	assert.Contains(t, ids, "durable-power-of-attorney")
	assert.Contains(t, ids, doctype.CustomDocumentLeaf)
}
