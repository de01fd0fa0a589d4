package application

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"projtree/internal/domain"
)

// Placeholder values for project entries that fail validation. Invalid
// entries are kept in place so sibling indices stay stable.
const (
	UntitledLabel = "Untitled"
	InvalidLabel  = "(invalid project)"
)

// Normalize parses and validates raw config file contents into a typed
// tree. Malformed pieces never abort the load: invalid categories are
// dropped, invalid projects are replaced by placeholders, and every
// problem is recorded in the returned issue map keyed by structural path.
// A non-nil error means the document was not parseable JSON at all; the
// parser's message is also recorded as a root issue.
func Normalize(data []byte) (*domain.RootConfig, domain.IssueMap, error) {
	issues := domain.IssueMap{}
	root := domain.NewRootConfig()

	if len(bytes.TrimSpace(data)) == 0 {
		return root, issues, nil
	}
	if !json.Valid(data) {
		var v any
		err := json.Unmarshal(data, &v)
		issues.Add(domain.RootKey, err.Error())
		return root, issues, err
	}
	members, err := domain.DecodeObject(data)
	if err != nil {
		issues.Add(domain.RootKey, "Configuration root must be a JSON object")
		return root, issues, nil
	}

	normalizeCategory(root, members, nil, issues)
	return root, issues, nil
}

func normalizeCategory(node *domain.CategoryNode, members []domain.RawMember, path domain.CategoryPath, issues domain.IssueMap) {
	for _, m := range members {
		if m.Key == domain.ReservedKey {
			if domain.KindOf(m.Value) != domain.KindArray {
				issues.Add(domain.CategoryKey(path)+"."+domain.ReservedKey, "Projects must be an array")
				continue
			}
			var entries []json.RawMessage
			if err := json.Unmarshal(m.Value, &entries); err != nil {
				issues.Add(domain.CategoryKey(path)+"."+domain.ReservedKey, err.Error())
				continue
			}
			for i, raw := range entries {
				node.Projects = append(node.Projects, normalizeProject(raw, path, i, issues))
			}
			continue
		}

		childPath := path.Child(m.Key)
		if domain.KindOf(m.Value) != domain.KindObject {
			issues.Add(domain.CategoryKey(childPath), "Category must be an object; this entry was ignored")
			continue
		}
		childMembers, err := domain.DecodeObject(m.Value)
		if err != nil {
			issues.Add(domain.CategoryKey(childPath), err.Error())
			continue
		}
		child := &domain.CategoryNode{Name: m.Key}
		normalizeCategory(child, childMembers, childPath, issues)
		if node.Child(m.Key) != nil {
			issues.Add(domain.CategoryKey(childPath), "Duplicate category key; the last occurrence replaced the earlier one")
		}
		node.AddChild(child)
	}
}

func normalizeProject(raw json.RawMessage, path domain.CategoryPath, index int, issues domain.IssueMap) domain.Project {
	key := domain.ProjectKey(path, index)
	p := domain.Project{ID: uuid.NewString()}

	if domain.KindOf(raw) != domain.KindObject {
		issues.Add(key, "Project entry must be an object")
		p.Label = InvalidLabel
		return p
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		issues.Add(key, err.Error())
		p.Label = InvalidLabel
		return p
	}

	if s, ok := nonBlankString(fields["label"]); ok {
		p.Label = s
	} else {
		issues.Add(key+".label", "Project label must be a non-empty string")
		p.Label = UntitledLabel
	}

	if s, ok := nonBlankString(fields["path"]); ok {
		p.Path = s
	} else {
		issues.Add(key+".path", "Project path must be a non-empty string")
	}

	if v, present := fields["icon"]; present {
		if s, ok := nonBlankString(v); ok {
			p.Icon = s
		} else {
			issues.Add(key+".icon", "Project icon must be a non-empty string")
		}
	}

	return p
}

func nonBlankString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
