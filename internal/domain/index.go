package domain

// IndexEntry is one row of the search index: a category or project with
// the fields search matches against. Position preserves document order so
// results come back in tree order.
type IndexEntry struct {
	Key      string // structural path key
	Kind     NodeKind
	Label    string // category name or project label
	AbsPath  string // resolved absolute path (projects only)
	Position int
}

// IndexEntries flattens the tree into index rows, pre-order, root projects
// first. resolve maps a project to its absolute path.
func (n *CategoryNode) IndexEntries(resolve func(Project) string) []IndexEntry {
	var out []IndexEntry
	var walk func(node *CategoryNode, path CategoryPath)
	walk = func(node *CategoryNode, path CategoryPath) {
		for i, p := range node.Projects {
			out = append(out, IndexEntry{
				Key:      ProjectKey(path, i),
				Kind:     KindProject,
				Label:    p.Label,
				AbsPath:  resolve(p),
				Position: len(out),
			})
		}
		for _, child := range node.Children {
			childPath := path.Child(child.Name)
			out = append(out, IndexEntry{
				Key:      CategoryKey(childPath),
				Kind:     KindCategory,
				Label:    child.Name,
				Position: len(out),
			})
			walk(child, childPath)
		}
	}
	walk(n, nil)
	return out
}
