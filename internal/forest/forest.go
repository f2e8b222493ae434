// Package forest implements the location-selection engine behind the
// connector folder picker: an immutable forest of selectable nodes, a
// mutable selection set, and pure derived views (indeterminate flags,
// ancestor-preserving search, selection aggregates).
package forest

// Kind classifies a node within a connector's location hierarchy.
// It is informational only and has no effect on selection semantics.
type Kind string

const (
	KindCabinet Kind = "cabinet"
	KindVault   Kind = "vault"
	KindFolder  Kind = "folder"
)

// NodeRecord is the nested wire form of a node as supplied by a connector
// listing. Unknown JSON fields are ignored during decoding.
type NodeRecord struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Kind          Kind         `json:"kind"`
	Path          string       `json:"path,omitempty"`
	DocumentCount *int         `json:"document_count,omitempty"`
	Children      []NodeRecord `json:"children,omitempty"`
}

// Node is one selectable location. Nodes are owned top-down by the Forest
// through Children; ParentID is a weak back-reference used only for upward
// walks.
type Node struct {
	ID            string
	Name          string
	Kind          Kind
	Path          string
	DocumentCount *int
	ParentID      *string
	Children      []string
}

// Forest is an ordered collection of node trees, arena-indexed by id.
// It is built once per configuration session and read-only afterwards.
type Forest struct {
	nodes map[string]*Node
	roots []string
}

// New builds a Forest from nested connector records. Duplicate ids are a
// precondition violation of the supplier; the first occurrence wins so that
// traversal stays well-defined. Records with an empty Path get one computed
// from their ancestry.
func New(records []NodeRecord) *Forest {
	f := &Forest{nodes: make(map[string]*Node)}
	for _, rec := range records {
		if f.add(rec, nil, "") {
			f.roots = append(f.roots, rec.ID)
		}
	}
	return f
}

// add indexes rec and its subtree. Returns false if the id was already
// taken, in which case the record is dropped.
func (f *Forest) add(rec NodeRecord, parentID *string, parentPath string) bool {
	if rec.ID == "" {
		return false
	}
	if _, exists := f.nodes[rec.ID]; exists {
		return false
	}

	path := rec.Path
	if path == "" {
		if parentPath == "" {
			path = rec.Name
		} else {
			path = parentPath + "/" + rec.Name
		}
	}

	node := &Node{
		ID:            rec.ID,
		Name:          rec.Name,
		Kind:          rec.Kind,
		Path:          path,
		DocumentCount: rec.DocumentCount,
		ParentID:      parentID,
	}
	f.nodes[rec.ID] = node

	for _, child := range rec.Children {
		if f.add(child, &node.ID, path) {
			node.Children = append(node.Children, child.ID)
		}
	}
	return true
}

// Find looks a node up by id. The second return value reports whether the
// id exists in the forest; callers must handle stale ids from a previous
// snapshot without treating them as errors.
func (f *Forest) Find(id string) (*Node, bool) {
	node, ok := f.nodes[id]
	return node, ok
}

// Roots returns the root node ids in their original order.
func (f *Forest) Roots() []string {
	return f.roots
}

// Len returns the number of nodes in the forest.
func (f *Forest) Len() int {
	return len(f.nodes)
}

// DescendantIDs returns every id strictly below the given node in
// depth-first preorder, following Children order. Empty for leaves and for
// unknown ids. The visited set bounds traversal so a malformed (cyclic)
// structure cannot hang the engine.
func (f *Forest) DescendantIDs(id string) []string {
	node, ok := f.nodes[id]
	if !ok {
		return nil
	}

	var ids []string
	visited := map[string]bool{id: true}

	var walk func(*Node)
	walk = func(n *Node) {
		for _, childID := range n.Children {
			if visited[childID] {
				continue
			}
			visited[childID] = true
			child, ok := f.nodes[childID]
			if !ok {
				continue
			}
			ids = append(ids, childID)
			walk(child)
		}
	}
	walk(node)

	return ids
}

// AncestorIDs returns the ids of every strict ancestor of the given node,
// nearest first, by walking ParentID back-references. The walk is bounded
// by a visited set for the same defensive reason as DescendantIDs.
func (f *Forest) AncestorIDs(id string) []string {
	node, ok := f.nodes[id]
	if !ok {
		return nil
	}

	var ids []string
	visited := map[string]bool{id: true}
	for node.ParentID != nil {
		parentID := *node.ParentID
		if visited[parentID] {
			break
		}
		visited[parentID] = true
		parent, ok := f.nodes[parentID]
		if !ok {
			break
		}
		ids = append(ids, parentID)
		node = parent
	}
	return ids
}
