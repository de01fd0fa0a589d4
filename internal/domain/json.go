package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON writes the node in its on-disk shape: an object whose
// "projects" key (emitted first, only when non-empty) holds the project
// list and whose remaining keys are child categories in insertion order.
func (n *CategoryNode) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	if len(n.Projects) > 0 {
		key, err := json.Marshal(ReservedKey)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(n.Projects)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
		first = false
	}
	for _, child := range n.Children {
		if !first {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(child.Name)
		if err != nil {
			return nil, err
		}
		val, err := child.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
		first = false
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// EncodeConfig renders the tree as pretty-printed JSON with a trailing
// newline, the exact byte form written to the config file.
func EncodeConfig(root *RootConfig) ([]byte, error) {
	raw, err := json.Marshal(root)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// RawMember is one key/value pair of a JSON object, in document order.
type RawMember struct {
	Key   string
	Value json.RawMessage
}

// DecodeObject reads a JSON object into its ordered members. The standard
// map decoding would lose document order, which the tree relies on.
func DecodeObject(data []byte) ([]RawMember, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("not a JSON object")
	}
	var members []RawMember
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		members = append(members, RawMember{Key: key, Value: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return members, nil
}

// JSONKind classifies a raw JSON value by its first significant byte.
type JSONKind int

const (
	KindInvalid JSONKind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindBool
	KindNull
)

// KindOf reports the kind of a raw JSON value.
func KindOf(raw json.RawMessage) JSONKind {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '{':
			return KindObject
		case '[':
			return KindArray
		case '"':
			return KindString
		case 't', 'f':
			return KindBool
		case 'n':
			return KindNull
		default:
			return KindNumber
		}
	}
	return KindInvalid
}
