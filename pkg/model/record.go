package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind tags a record document and the model object built from it.
type Kind string

const (
	KindComponent Kind = "component"
	KindGroup     Kind = "group"
)

const (
	typeKey      = "type"
	relationsKey = "relations"
)

// Attributes is the raw key/value mapping of one record entry.
type Attributes map[string]any

// Type returns the entry's declared type, or "" when it is missing or not
// a string.
func (a Attributes) Type() string {
	s, _ := a[typeKey].(string)
	return s
}

// String returns the value under key as text. Missing and null values are
// empty; numbers keep their source text when decoded as json.Number.
func (a Attributes) String(key string) string {
	switch v := a[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// without returns a copy of a minus the given keys.
func (a Attributes) without(keys ...string) Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Record is one decoded input document.
//
// A component record carries Component and Dependencies; a group record
// carries Group. Dependencies may hold a "relations" list of entries.
type Record struct {
	Kind         Kind         `json:"kind"`
	Component    Attributes   `json:"component,omitempty"`
	Dependencies []Attributes `json:"dependencies,omitempty"`
	Group        *GroupRecord `json:"group,omitempty"`
}

// GroupRecord lists the members of a group record.
type GroupRecord struct {
	Components []Attributes `json:"components"`
}

// relations extracts the nested relation entries of a dependency.
func relations(dep Attributes) ([]Attributes, error) {
	raw, ok := dep[relationsKey]
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("relations must be a list, got %T", raw)
	}
	out := make([]Attributes, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("relation %d must be an object, got %T", i, item)
		}
		out = append(out, Attributes(m))
	}
	return out, nil
}
