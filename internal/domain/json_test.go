package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMarshalJSONOrdering(t *testing.T) {
	root := NewRootConfig()
	root.InsertProject(CategoryPath{"Zeta"}, Project{Label: "Z", Path: "~/z"})
	root.InsertProject(CategoryPath{"Alpha"}, Project{Label: "A", Path: "~/a"})
	root.InsertProject(nil, Project{Label: "Loose", Path: "~/loose"})

	raw, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := string(raw)

	// The projects key leads, then children in insertion order.
	zeta := strings.Index(got, `"Zeta"`)
	alpha := strings.Index(got, `"Alpha"`)
	projects := strings.Index(got, `"projects"`)
	if projects < 0 || zeta < 0 || alpha < 0 {
		t.Fatalf("missing keys in %s", got)
	}
	if !(projects < zeta && zeta < alpha) {
		t.Errorf("expected projects, Zeta, Alpha in that order, got %s", got)
	}
}

func TestMarshalJSONOmitsEmptyProjects(t *testing.T) {
	root := NewRootConfig()
	root.EnsurePath(CategoryPath{"Empty"})

	raw, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `{"Empty":{}}`; string(raw) != want {
		t.Errorf("expected %s, got %s", want, raw)
	}
}

func TestEncodeConfig(t *testing.T) {
	root := NewRootConfig()
	root.InsertProject(CategoryPath{"Work"}, Project{Label: "Site", Path: "~/work/site", Icon: "🌐"})

	data, err := EncodeConfig(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := string(data)
	if !strings.HasSuffix(got, "\n") {
		t.Error("expected a trailing newline")
	}
	if !strings.Contains(got, "  \"Work\"") {
		t.Errorf("expected two-space indentation, got:\n%s", got)
	}
	if strings.Contains(got, `"icon": ""`) {
		t.Error("empty icon should be omitted")
	}

	// The encoded form decodes back to the same tree.
	members, err := DecodeObject(data)
	if err != nil {
		t.Fatalf("re-decode failed: %v", err)
	}
	if len(members) != 1 || members[0].Key != "Work" {
		t.Errorf("unexpected members: %+v", members)
	}
}

func TestDecodeObjectPreservesOrder(t *testing.T) {
	data := []byte(`{"b": 1, "a": {"x": true}, "c": "s"}`)
	members, err := DecodeObject(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var keys []string
	for _, m := range members {
		keys = append(keys, m.Key)
	}
	want := []string{"b", "a", "c"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected key order %v, got %v", want, keys)
		}
	}
}

func TestDecodeObjectRejectsNonObject(t *testing.T) {
	for _, data := range []string{`[1,2]`, `"s"`, `42`, `null`} {
		if _, err := DecodeObject([]byte(data)); err == nil {
			t.Errorf("expected error for %s", data)
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		raw  string
		want JSONKind
	}{
		{`{}`, KindObject},
		{` {"a":1}`, KindObject},
		{`[]`, KindArray},
		{`"s"`, KindString},
		{`42`, KindNumber},
		{`-1.5`, KindNumber},
		{`true`, KindBool},
		{`false`, KindBool},
		{`null`, KindNull},
		{``, KindInvalid},
		{`   `, KindInvalid},
	}
	for _, tt := range tests {
		if got := KindOf(json.RawMessage(tt.raw)); got != tt.want {
			t.Errorf("KindOf(%q): expected %v, got %v", tt.raw, tt.want, got)
		}
	}
}
