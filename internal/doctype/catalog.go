// Package doctype holds the static catalog of selectable document types.
// A node is either a leaf (a concrete, fillable template) or a branch (a
// category that must be narrowed to one of its children before field entry).
package doctype

// Kind discriminates leaves from branches.
type Kind int

const (
	KindLeaf Kind = iota
	KindBranch
)

// Node is one entry in the document type catalog.
type Node struct {
	ID       string
	Title    string
	Children []Node
}

// IsBranch reports whether the node has sub-kinds.
func (n *Node) IsBranch() bool {
	return len(n.Children) > 0
}

// CustomDocumentLeaf is the leaf that accepts a user-uploaded PDF instead of
// a filled template.
const CustomDocumentLeaf = "upload-your-document"

// catalog is the full taxonomy. Lease agreements and powers of attorney are
// the only branches.
var catalog = []Node{
	{ID: "affidavit", Title: "Affidavit"},
	{ID: "promissory-note", Title: "Promissory Note"},
	{ID: "bill-of-sale", Title: "Bill of Sale"},
	{ID: "last-will-testament", Title: "Last Will and Testament"},
	{ID: "non-disclosure-agreement", Title: "Non-Disclosure Agreement"},
	{
		ID: "lease-agreement", Title: "Lease Agreement",
		Children: []Node{
			{ID: "residential-lease-agreement", Title: "Residential Lease Agreement"},
			{ID: "commercial-lease-agreement", Title: "Commercial Lease Agreement"},
		},
	},
	{
		ID: "power-of-attorney", Title: "Power of Attorney",
		Children: []Node{
			{ID: "general-power-of-attorney", Title: "General Power of Attorney"},
			{ID: "durable-power-of-attorney", Title: "Durable Power of Attorney"},
			{ID: "medical-power-of-attorney", Title: "Medical Power of Attorney"},
		},
	},
	{ID: CustomDocumentLeaf, Title: "Upload Your Own Document"},
}

// index maps node id to the node and its parent branch id ("" for top-level).
type indexed struct {
	node   *Node
	parent string
}

var index = buildIndex()

func buildIndex() map[string]indexed {
	m := make(map[string]indexed)
	for i := range catalog {
		n := &catalog[i]
		m[n.ID] = indexed{node: n}
		for j := range n.Children {
			m[n.Children[j].ID] = indexed{node: &n.Children[j], parent: n.ID}
		}
	}
	return m
}

// Catalog returns the top-level catalog nodes.
func Catalog() []Node {
	return catalog
}

// Resolve looks up a node by id and reports whether it is a leaf or branch.
// The boolean is false for unknown ids.
func Resolve(id string) (*Node, Kind, bool) {
	entry, ok := index[id]
	if !ok {
		return nil, KindLeaf, false
	}
	if entry.node.IsBranch() {
		return entry.node, KindBranch, true
	}
	return entry.node, KindLeaf, true
}

// ParentBranch returns the branch id a leaf belongs to, or "" for top-level
// nodes.
func ParentBranch(id string) string {
	return index[id].parent
}

// LeafIDs returns all concrete (directly selectable) type ids.
func LeafIDs() []string {
	var ids []string
	for i := range catalog {
		n := &catalog[i]
		if n.IsBranch() {
			for j := range n.Children {
				ids = append(ids, n.Children[j].ID)
			}
			continue
		}
		ids = append(ids, n.ID)
	}
	return ids
}
