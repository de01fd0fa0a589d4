package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for tree operations
var (
	ErrNodeNotFound   = errors.New("category not found")
	ErrProjectIndex   = errors.New("project index out of range")
	ErrCategoryExists = errors.New("category already exists")
	ErrMoveInsideSelf = errors.New("cannot move a category inside itself")
	ErrReservedName   = errors.New("reserved category name")
)

// ReservedKey is the object key that holds a node's project list on disk.
// It can never be used as a category name.
const ReservedKey = "projects"

// Project is a leaf bookmark: a labeled filesystem location.
// ID is assigned at normalization time and never persisted; it is
// regenerated on every load.
type Project struct {
	ID    string `json:"-"`
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon,omitempty"`
}

// CategoryNode is a named container holding an ordered project list and
// ordered named child categories. Insertion order is significant and is
// preserved on disk.
type CategoryNode struct {
	Name     string
	Projects []Project
	Children []*CategoryNode
}

// RootConfig is the root of the config tree. It has the same shape as a
// category node; its Name is always empty.
type RootConfig = CategoryNode

// NewRootConfig returns an empty tree.
func NewRootConfig() *RootConfig {
	return &CategoryNode{}
}

// Child returns the direct child category with the given name, or nil.
func (n *CategoryNode) Child(name string) *CategoryNode {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// AddChild appends a child category, replacing any existing child with
// the same name.
func (n *CategoryNode) AddChild(child *CategoryNode) {
	for i, c := range n.Children {
		if c.Name == child.Name {
			n.Children[i] = child
			return
		}
	}
	n.Children = append(n.Children, child)
}

// RemoveChild detaches the direct child with the given name.
// Returns the detached node, or nil if absent.
func (n *CategoryNode) RemoveChild(name string) *CategoryNode {
	for i, c := range n.Children {
		if c.Name == name {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return c
		}
	}
	return nil
}

// HasContent reports whether the node owns any projects or child categories.
func (n *CategoryNode) HasContent() bool {
	return len(n.Projects) > 0 || len(n.Children) > 0
}

// NodeByPath walks named children from this node. The empty path returns
// the node itself.
func (n *CategoryNode) NodeByPath(path CategoryPath) (*CategoryNode, error) {
	cur := n
	for i, name := range path {
		next := cur.Child(name)
		if next == nil {
			return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, path[:i+1].String())
		}
		cur = next
	}
	return cur, nil
}

// EnsurePath is NodeByPath with creation on demand: missing intermediate
// categories are materialized as empty nodes.
func (n *CategoryNode) EnsurePath(path CategoryPath) *CategoryNode {
	cur := n
	for _, name := range path {
		next := cur.Child(name)
		if next == nil {
			next = &CategoryNode{Name: name}
			cur.Children = append(cur.Children, next)
		}
		cur = next
	}
	return cur
}

// InsertProject appends a project to the category at path, creating the
// category chain on demand.
func (n *CategoryNode) InsertProject(path CategoryPath, p Project) {
	node := n.EnsurePath(path)
	node.Projects = append(node.Projects, p)
}

// RemoveProject splices the project at index out of the category at path.
func (n *CategoryNode) RemoveProject(path CategoryPath, index int) error {
	node, err := n.NodeByPath(path)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(node.Projects) {
		return fmt.Errorf("%w: %s[%d]", ErrProjectIndex, path.String(), index)
	}
	node.Projects = append(node.Projects[:index], node.Projects[index+1:]...)
	return nil
}

// MoveOrUpdateProject replaces the project at source[index] with updated.
// When source and destination are the same category the entry is replaced
// in place, preserving its index; otherwise it is removed from the source
// list and appended to the destination (created on demand). The asymmetry
// keeps sibling ordering stable for same-category edits.
func (n *CategoryNode) MoveOrUpdateProject(source CategoryPath, index int, destination CategoryPath, updated Project) error {
	src, err := n.NodeByPath(source)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(src.Projects) {
		return fmt.Errorf("%w: %s[%d]", ErrProjectIndex, source.String(), index)
	}
	if source.Equal(destination) {
		src.Projects[index] = updated
		return nil
	}
	src.Projects = append(src.Projects[:index], src.Projects[index+1:]...)
	n.InsertProject(destination, updated)
	return nil
}

// RenameOrMoveCategory detaches the subtree at oldPath and re-attaches it
// under newParent with newName, preserving its internal structure. It fails
// on a name collision at the destination (unless the destination is the node
// itself) and on any move that would place the category inside its own
// subtree.
func (n *CategoryNode) RenameOrMoveCategory(oldPath CategoryPath, newParent CategoryPath, newName string) error {
	if len(oldPath) == 0 {
		return fmt.Errorf("%w: cannot move the root", ErrNodeNotFound)
	}
	if newName == ReservedKey {
		return fmt.Errorf("%w: %q", ErrReservedName, newName)
	}
	node, err := n.NodeByPath(oldPath)
	if err != nil {
		return err
	}
	newPath := newParent.Child(newName)
	if oldPath.IsAncestorOrSelf(newPath) && !oldPath.Equal(newPath) {
		return fmt.Errorf("%w: %s -> %s", ErrMoveInsideSelf, oldPath.String(), newPath.String())
	}
	if existing, err := n.NodeByPath(newPath); err == nil && existing != node {
		return fmt.Errorf("%w: %s", ErrCategoryExists, newPath.String())
	}
	if oldPath.Equal(newPath) {
		return nil
	}
	parent, err := n.NodeByPath(oldPath.Parent())
	if err != nil {
		return err
	}
	parent.RemoveChild(node.Name)
	node.Name = newName
	dest := n.EnsurePath(newParent)
	dest.AddChild(node)
	return nil
}

// RemoveCategory detaches the subtree at path. With mergeIntoRoot, a
// non-empty node's projects and child categories are merged into the root
// (combining with same-named root categories recursively); an empty node is
// simply dropped either way.
func (n *CategoryNode) RemoveCategory(path CategoryPath, mergeIntoRoot bool) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: cannot remove the root", ErrNodeNotFound)
	}
	node, err := n.NodeByPath(path)
	if err != nil {
		return err
	}
	parent, err := n.NodeByPath(path.Parent())
	if err != nil {
		return err
	}
	parent.RemoveChild(node.Name)
	if mergeIntoRoot && node.HasContent() {
		mergeNodes(n, node)
	}
	return nil
}

// mergeNodes folds src into dst: project lists concatenate (dst first),
// child categories combine key-by-key with the same rule, and children
// present on one side only carry over unchanged.
func mergeNodes(dst, src *CategoryNode) {
	dst.Projects = append(dst.Projects, src.Projects...)
	for _, child := range src.Children {
		if existing := dst.Child(child.Name); existing != nil {
			mergeNodes(existing, child)
		} else {
			dst.Children = append(dst.Children, child)
		}
	}
}

// CategoryRef pairs a category node with its path from the root.
type CategoryRef struct {
	Path CategoryPath
	Node *CategoryNode
}

// CollectCategories returns all categories beneath the root in pre-order,
// excluding the root itself.
func (n *CategoryNode) CollectCategories() []CategoryRef {
	var out []CategoryRef
	var walk func(node *CategoryNode, path CategoryPath)
	walk = func(node *CategoryNode, path CategoryPath) {
		for _, child := range node.Children {
			childPath := path.Child(child.Name)
			out = append(out, CategoryRef{Path: childPath, Node: child})
			walk(child, childPath)
		}
	}
	walk(n, nil)
	return out
}

// CategoryPath is the ordered sequence of category names from the root to a
// node. The empty path denotes the root.
type CategoryPath []string

// ParseCategoryPath splits a dotted path string. The empty string parses to
// the root path.
func ParseCategoryPath(s string) CategoryPath {
	if s == "" {
		return nil
	}
	return CategoryPath(strings.Split(s, "."))
}

// String returns the dotted form; the root path renders as "".
func (p CategoryPath) String() string {
	return strings.Join(p, ".")
}

// Equal reports whether both paths have identical names at every position.
func (p CategoryPath) Equal(q CategoryPath) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// IsAncestorOrSelf reports whether p is a prefix of q.
func (p CategoryPath) IsAncestorOrSelf(q CategoryPath) bool {
	if len(p) > len(q) {
		return false
	}
	return p.Equal(q[:len(p)])
}

// Parent returns the path with the last segment removed; the root's parent
// is the root.
func (p CategoryPath) Parent() CategoryPath {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// Child returns a new path with name appended.
func (p CategoryPath) Child(name string) CategoryPath {
	out := make(CategoryPath, 0, len(p)+1)
	out = append(out, p...)
	return append(out, name)
}

// Leaf returns the last segment, or "" for the root.
func (p CategoryPath) Leaf() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}
