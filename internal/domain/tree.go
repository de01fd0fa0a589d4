package domain

// NodeKind distinguishes the two kinds of tree refs handed to views.
type NodeKind int

const (
	KindCategory NodeKind = iota
	KindProject
)

func (k NodeKind) String() string {
	if k == KindProject {
		return "project"
	}
	return "category"
}

// TreeNode is a view over one node of the loaded tree, produced by the
// query façade for navigation and rendering. Project refs carry both the
// portable path from the document and the resolved absolute path.
type TreeNode struct {
	Kind         NodeKind
	Name         string       // category name or project label
	Path         CategoryPath // category's own path, or the owning category's path for a project
	Index        int          // position within the owning project list (projects only)
	ProjectID    string       // normalization-time ID (projects only)
	AbsPath      string       // resolved absolute path (projects only)
	PortablePath string       // path string as persisted (projects only)
	Icon         string
	Issues       []string

	Children   []*TreeNode
	IsExpanded bool
	Parent     *TreeNode
}

// Key returns the node's structural path key.
func (n *TreeNode) Key() string {
	if n.Kind == KindProject {
		return ProjectKey(n.Path, n.Index)
	}
	return CategoryKey(n.Path)
}

// Flatten returns all visible nodes in the tree (for list rendering).
func (n *TreeNode) Flatten() []*TreeNode {
	var result []*TreeNode
	n.flattenRecursive(&result)
	return result
}

func (n *TreeNode) flattenRecursive(result *[]*TreeNode) {
	*result = append(*result, n)
	if n.IsExpanded {
		for _, child := range n.Children {
			child.flattenRecursive(result)
		}
	}
}

// Depth returns the depth of this node in the tree.
func (n *TreeNode) Depth() int {
	depth := 0
	current := n.Parent
	for current != nil {
		depth++
		current = current.Parent
	}
	return depth
}

// Toggle expands or collapses the node.
func (n *TreeNode) Toggle() {
	n.IsExpanded = !n.IsExpanded
}

// Expand sets the node as expanded.
func (n *TreeNode) Expand() {
	n.IsExpanded = true
}

// Collapse sets the node as collapsed.
func (n *TreeNode) Collapse() {
	n.IsExpanded = false
}

// SearchResult is a single match from the search index.
type SearchResult struct {
	Kind    NodeKind
	Key     string // structural path key
	Label   string
	AbsPath string
}
