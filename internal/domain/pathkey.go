package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// RootKey is the structural path key addressing the root node.
const RootKey = "__root__"

const projectsInfix = "." + ReservedKey + "["

// CategoryKey returns the structural path key for a category: the dotted
// category path, or RootKey for the root itself.
func CategoryKey(path CategoryPath) string {
	if len(path) == 0 {
		return RootKey
	}
	return path.String()
}

// ProjectKey returns the structural path key for the project at index
// within the category at path, e.g. "__root__.projects[2]" or
// "Work.Client.projects[0]".
func ProjectKey(path CategoryPath, index int) string {
	return fmt.Sprintf("%s%s%d]", CategoryKey(path), projectsInfix, index)
}

// ParseProjectKey parses a structural project key back into its category
// path and index. Everything before ".projects[" is taken as a single
// category segment when it is not the root marker; legacy keys never
// distinguished nested paths from names containing dots.
func ParseProjectKey(key string) (CategoryPath, int, error) {
	at := strings.LastIndex(key, projectsInfix)
	if at < 0 || !strings.HasSuffix(key, "]") {
		return nil, 0, fmt.Errorf("malformed project key: %q", key)
	}
	idxStr := key[at+len(projectsInfix) : len(key)-1]
	index, err := strconv.Atoi(idxStr)
	if err != nil || index < 0 {
		return nil, 0, fmt.Errorf("malformed project index in key %q", key)
	}
	prefix := key[:at]
	if prefix == RootKey {
		return nil, index, nil
	}
	if prefix == "" {
		return nil, 0, fmt.Errorf("malformed project key: %q", key)
	}
	return CategoryPath{prefix}, index, nil
}

// IssueMap records validation issues against structural path keys. It is
// recomputed wholesale on every load.
type IssueMap map[string][]string

// Add appends a problem description for a key.
func (m IssueMap) Add(key, problem string) {
	m[key] = append(m[key], problem)
}

// HasAny reports whether any issue was recorded.
func (m IssueMap) HasAny() bool {
	return len(m) > 0
}

// ForKey returns the issues recorded exactly at key.
func (m IssueMap) ForKey(key string) []string {
	return m[key]
}

// ForProject gathers issues for a project entry and its field sub-keys.
func (m IssueMap) ForProject(path CategoryPath, index int) []string {
	base := ProjectKey(path, index)
	var out []string
	out = append(out, m[base]...)
	for _, field := range []string{"label", "path", "icon"} {
		out = append(out, m[base+"."+field]...)
	}
	return out
}
