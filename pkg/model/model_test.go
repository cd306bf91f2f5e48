package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/matzehuels/felipe/pkg/config"
	felerrors "github.com/matzehuels/felipe/pkg/errors"
)

func testSet(t *testing.T) *config.Set {
	t.Helper()
	doc := &config.Document{
		BaseComponent: config.ComponentType{UniqueKeys: []string{"name"}, LabelKeys: []string{"name"}},
		Components: []config.ComponentType{
			{Name: "service", LabelKeys: []string{"name", "version"}},
			{Name: "database", Base: "service", UniqueKeys: []string{"host", "name"}},
		},
		Relations: []config.RelationType{
			{Name: "calls", Direction: config.DirectionForward},
			{Name: "reads"},
		},
	}
	s, err := config.Resolve(doc)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	return s
}

func TestBuildComponent_Identity(t *testing.T) {
	set := testSet(t)

	tests := []struct {
		name      string
		attrs     Attributes
		wantID    string
		wantLabel string
	}{
		{
			name:      "single key",
			attrs:     Attributes{"type": "service", "name": "api", "version": "1.2"},
			wantID:    "service/api",
			wantLabel: `api\n1.2`,
		},
		{
			name:      "multiple keys",
			attrs:     Attributes{"type": "database", "host": "db1", "name": "users"},
			wantID:    "database/db1/users",
			wantLabel: `users\n`,
		},
		{
			name:      "missing key is empty segment",
			attrs:     Attributes{"type": "database", "name": "users"},
			wantID:    "database//users",
			wantLabel: `users\n`,
		},
		{
			name:      "number keeps source text",
			attrs:     Attributes{"type": "service", "name": "api", "version": json.Number("2.10")},
			wantID:    "service/api",
			wantLabel: `api\n2.10`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := BuildComponent(set, tt.attrs)
			if err != nil {
				t.Fatalf("BuildComponent() error: %v", err)
			}
			if c.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", c.ID, tt.wantID)
			}
			if c.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", c.Label, tt.wantLabel)
			}
		})
	}
}

func TestBuildComponent_IdentityDeterminism(t *testing.T) {
	set := testSet(t)

	a, _ := BuildComponent(set, Attributes{"type": "service", "name": "api", "version": "1"})
	b, _ := BuildComponent(set, Attributes{"type": "service", "name": "api", "version": "2"})
	c, _ := BuildComponent(set, Attributes{"type": "service", "name": "web"})

	if a.ID != b.ID {
		t.Errorf("same unique keys gave %q and %q", a.ID, b.ID)
	}
	if a.ID == c.ID {
		t.Errorf("different unique keys both gave %q", a.ID)
	}
}

func TestBuildComponent_Errors(t *testing.T) {
	set := testSet(t)

	_, err := BuildComponent(set, Attributes{"type": "queue", "name": "jobs"})
	var ute *felerrors.UnknownTypeError
	if !errors.As(err, &ute) {
		t.Fatalf("error = %v, want UnknownTypeError", err)
	}
	if ute.Name != "queue" || ute.Kind != config.KindComponent {
		t.Errorf("UnknownTypeError = %+v", ute)
	}

	_, err = BuildComponent(set, Attributes{"name": "jobs"})
	if !felerrors.Is(err, felerrors.ErrCodeInvalidRecord) {
		t.Errorf("missing type error = %v, want %s", err, felerrors.ErrCodeInvalidRecord)
	}
}

func TestLoadComponent_EdgeAccumulation(t *testing.T) {
	set := testSet(t)
	rec := &Record{
		Kind:      KindComponent,
		Component: Attributes{"type": "service", "name": "api"},
		Dependencies: []Attributes{
			{
				"type": "database", "host": "db1", "name": "users",
				"relations": []any{
					map[string]any{"type": "calls"},
					map[string]any{"type": "reads"},
				},
			},
			{"type": "service", "name": "auth", "relations": []any{map[string]any{"type": "calls"}}},
			{"type": "database", "host": "db1", "name": "users", "relations": []any{map[string]any{"type": "reads"}}},
			{"type": "service", "name": "metrics"},
		},
	}

	c, err := LoadComponent(set, rec)
	if err != nil {
		t.Fatalf("LoadComponent() error: %v", err)
	}

	edges := c.Edges()
	if len(edges) != 3 {
		t.Fatalf("len(Edges()) = %d, want 3", len(edges))
	}
	if edges[0].Target.ID != "database/db1/users" || len(edges[0].Relations) != 3 {
		t.Errorf("edge 0 = %s with %d relations", edges[0].Target.ID, len(edges[0].Relations))
	}
	if edges[1].Target.ID != "service/auth" || len(edges[1].Relations) != 1 {
		t.Errorf("edge 1 = %s with %d relations", edges[1].Target.ID, len(edges[1].Relations))
	}
	if edges[2].Target.ID != "service/metrics" || len(edges[2].Relations) != 0 {
		t.Errorf("edge 2 = %s with %d relations", edges[2].Target.ID, len(edges[2].Relations))
	}
	if _, ok := edges[0].Target.Attributes["relations"]; ok {
		t.Error("dependency attributes should not contain relations")
	}
	if got := len(c.Dependencies()); got != 3 {
		t.Errorf("len(Dependencies()) = %d, want 3", got)
	}
}

func TestLoadComponent_Errors(t *testing.T) {
	set := testSet(t)

	tests := []struct {
		name string
		rec  *Record
		code felerrors.Code
	}{
		{
			name: "no component",
			rec:  &Record{Kind: KindComponent},
			code: felerrors.ErrCodeInvalidRecord,
		},
		{
			name: "unknown dependency type",
			rec: &Record{
				Kind:         KindComponent,
				Component:    Attributes{"type": "service", "name": "api"},
				Dependencies: []Attributes{{"type": "cache"}},
			},
			code: felerrors.ErrCodeUnknownType,
		},
		{
			name: "unknown relation type",
			rec: &Record{
				Kind:      KindComponent,
				Component: Attributes{"type": "service", "name": "api"},
				Dependencies: []Attributes{{
					"type": "service", "name": "b",
					"relations": []any{map[string]any{"type": "pings"}},
				}},
			},
			code: felerrors.ErrCodeUnknownType,
		},
		{
			name: "relations not a list",
			rec: &Record{
				Kind:         KindComponent,
				Component:    Attributes{"type": "service", "name": "api"},
				Dependencies: []Attributes{{"type": "service", "name": "b", "relations": "calls"}},
			},
			code: felerrors.ErrCodeInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadComponent(set, tt.rec)
			if !felerrors.Is(err, tt.code) {
				t.Fatalf("LoadComponent() error = %v, want %s", err, tt.code)
			}
			if !felerrors.IsRecordError(err) {
				t.Error("error should be a record error")
			}
		})
	}
}

func TestLoadGroup(t *testing.T) {
	set := testSet(t)
	rec := &Record{
		Kind: KindGroup,
		Group: &GroupRecord{Components: []Attributes{
			{"type": "service", "name": "api", "version": "1"},
			{"type": "service", "name": "web"},
			{"type": "service", "name": "api", "version": "2"},
		}},
	}

	g, err := LoadGroup(set, rec)
	if err != nil {
		t.Fatalf("LoadGroup() error: %v", err)
	}
	if g.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", g.Len())
	}

	members := g.Components()
	if members[0].ID != "service/api" || members[1].ID != "service/web" {
		t.Errorf("order = %s, %s", members[0].ID, members[1].ID)
	}
	if members[0].Label != `api\n2` {
		t.Errorf("duplicate identity should overwrite: label = %q", members[0].Label)
	}
}

func TestLoad_Dispatch(t *testing.T) {
	set := testSet(t)

	tests := []struct {
		name     string
		rec      *Record
		wantKind Kind
		wantNil  bool
	}{
		{"component", &Record{Kind: KindComponent, Component: Attributes{"type": "service", "name": "a"}}, KindComponent, false},
		{"group", &Record{Kind: KindGroup, Group: &GroupRecord{}}, KindGroup, false},
		{"unknown kind", &Record{Kind: "diagram"}, "", true},
		{"missing kind", &Record{Component: Attributes{"type": "service"}}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Load(set, tt.rec)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if tt.wantNil {
				if doc != nil {
					t.Errorf("Load() = %v, want nil", doc)
				}
				return
			}
			if doc.Kind() != tt.wantKind {
				t.Errorf("Kind() = %q, want %q", doc.Kind(), tt.wantKind)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	set := testSet(t)
	r := NewRegistry()

	a, _ := BuildComponent(set, Attributes{"type": "service", "name": "api", "version": "1"})
	b, _ := BuildComponent(set, Attributes{"type": "service", "name": "api", "version": "2"})
	r.Register(a)
	r.Register(b)

	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
	got, ok := r.Lookup("service/api")
	if !ok || got != b {
		t.Error("later registration should win")
	}

	r.Freeze()
	defer func() {
		if recover() == nil {
			t.Error("Register on frozen registry should panic")
		}
	}()
	r.Register(a)
}

func TestAttributes_String(t *testing.T) {
	a := Attributes{
		"s":    "text",
		"n":    json.Number("007"),
		"f":    1.5,
		"b":    true,
		"null": nil,
	}

	tests := map[string]string{
		"s":       "text",
		"n":       "007",
		"f":       "1.5",
		"b":       "true",
		"null":    "",
		"missing": "",
	}
	for key, want := range tests {
		if got := a.String(key); got != want {
			t.Errorf("String(%q) = %q, want %q", key, got, want)
		}
	}
}
