package dot

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/matzehuels/felipe/pkg/config"
	"github.com/matzehuels/felipe/pkg/errors"
	"github.com/matzehuels/felipe/pkg/model"
)

const testConfig = `
base_component:
  unique_keys: [name]
  label_keys: [name]
components:
  service:
    appearance:
      color: blue
      label: ignored
  database:
    appearance:
      shape: cylinder
base_relation:
  appearance:
    style: dashed
relations:
  calls:
    direction: "->"
    appearance:
      color: red
  reads:
    appearance:
      color: green
  writes:
    direction: "<-"
`

func testSet(t *testing.T) *config.Set {
	t.Helper()
	doc, err := config.Decode([]byte(testConfig), config.FormatYAML)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	set, err := config.Resolve(doc)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	return set
}

func rels(types ...string) []any {
	out := make([]any, len(types))
	for i, typ := range types {
		out[i] = map[string]any{"type": typ}
	}
	return out
}

func apiRecord() *model.Record {
	return &model.Record{
		Kind:      model.KindComponent,
		Component: model.Attributes{"type": "service", "name": "api"},
		Dependencies: []model.Attributes{
			{"type": "database", "name": "users", "relations": rels("calls", "reads")},
			{"type": "database", "name": "cache", "relations": rels("writes")},
		},
	}
}

func loadAPI(t *testing.T, set *config.Set) *model.Component {
	t.Helper()
	c, err := model.LoadComponent(set, apiRecord())
	if err != nil {
		t.Fatalf("LoadComponent() error: %v", err)
	}
	return c
}

func TestComponent(t *testing.T) {
	set := testSet(t)
	got, err := Component(set, loadAPI(t, set))
	if err != nil {
		t.Fatalf("Component() error: %v", err)
	}

	want := `digraph G {
    rankdir=LR
    fontsize=11.0
    "service/api" [color = blue label = "api"];
    "database/users" [shape = cylinder label = "users"];
    "database/cache" [shape = cylinder label = "cache"];
    "service/api" -> "database/users" [style = dashed color = red label = ""];
    "database/users" -> "service/api" [style = dashed color = green label = ""];
    "database/cache" -> "service/api" [style = dashed label = ""];
}
`
	if got != want {
		t.Errorf("Component() =\n%s\nwant:\n%s", got, want)
	}
}

func TestComponent_NoDependencies(t *testing.T) {
	set := testSet(t)
	c, err := model.BuildComponent(set, model.Attributes{"type": "database", "name": "logs"})
	if err != nil {
		t.Fatalf("BuildComponent() error: %v", err)
	}
	got, err := Component(set, c)
	if err != nil {
		t.Fatalf("Component() error: %v", err)
	}
	want := "digraph G {\n    rankdir=LR\n    fontsize=11.0\n" +
		"    \"database/logs\" [shape = cylinder label = \"logs\"];\n}\n"
	if got != want {
		t.Errorf("Component() = %q, want %q", got, want)
	}
}

func TestComponent_DependencyWithoutRelations(t *testing.T) {
	set := testSet(t)
	c, err := model.LoadComponent(set, &model.Record{
		Kind:         model.KindComponent,
		Component:    model.Attributes{"type": "service", "name": "api"},
		Dependencies: []model.Attributes{{"type": "database", "name": "users"}},
	})
	if err != nil {
		t.Fatalf("LoadComponent() error: %v", err)
	}
	got, err := Component(set, c)
	if err != nil {
		t.Fatalf("Component() error: %v", err)
	}
	if !strings.Contains(got, `"database/users" [shape = cylinder label = "users"];`) {
		t.Errorf("dependency node missing:\n%s", got)
	}
	if strings.Contains(got, "->") {
		t.Errorf("unexpected edge:\n%s", got)
	}
}

func TestGroup(t *testing.T) {
	set := testSet(t)
	reg := model.NewRegistry()
	reg.Register(loadAPI(t, set))
	reg.Freeze()

	g, err := model.LoadGroup(set, &model.Record{
		Kind: model.KindGroup,
		Group: &model.GroupRecord{Components: []model.Attributes{
			{"type": "service", "name": "api"},
			{"type": "service", "name": "web"},
		}},
	})
	if err != nil {
		t.Fatalf("LoadGroup() error: %v", err)
	}

	got, err := Group(set, g, reg)
	if err != nil {
		t.Fatalf("Group() error: %v", err)
	}
	want := `digraph G {
    rankdir=LR
    fontsize=11.0
    "service/api" [color = blue label = "api"];
    "database/users" [shape = cylinder label = "users"];
    "database/cache" [shape = cylinder label = "cache"];
    "service/api" -> "database/users" [style = dashed color = red label = ""];
    "database/users" -> "service/api" [style = dashed color = green label = ""];
    "database/cache" -> "service/api" [style = dashed label = ""];
    "service/web" [color = blue label = "web"];
}
`
	if got != want {
		t.Errorf("Group() =\n%s\nwant:\n%s", got, want)
	}

	// Without a registry every member is rendered from the group itself.
	bare, err := Group(set, g, nil)
	if err != nil {
		t.Fatalf("Group(nil registry) error: %v", err)
	}
	if strings.Contains(bare, "->") || strings.Count(bare, ";\n") != 2 {
		t.Errorf("Group(nil registry) =\n%s", bare)
	}
}

func TestDocument(t *testing.T) {
	set := testSet(t)
	api := loadAPI(t, set)

	want, err := Component(set, api)
	if err != nil {
		t.Fatalf("Component() error: %v", err)
	}
	got, err := Document(set, api, nil)
	if err != nil {
		t.Fatalf("Document() error: %v", err)
	}
	if got != want {
		t.Errorf("Document() differs from Component()")
	}

	if _, err := Document(set, nil, nil); !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("Document(nil) error = %v, want INTERNAL_ERROR", err)
	}
}

func TestFormatAttrs(t *testing.T) {
	tests := []struct {
		name  string
		label string
		attrs config.Appearance
		want  string
	}{
		{"empty", "x", config.Appearance{}, `[label = "x"]`},
		{"empty label", "", config.NewAppearance("color", "red"), `[color = red label = ""]`},
		{"order kept", "n", config.NewAppearance("b", "1", "a", "2"), `[b = 1 a = 2 label = "n"]`},
		{"label ignored", "n", config.NewAppearance("label", `"x"`, "shape", "box"), `[shape = box label = "n"]`},
		{"no escaping", `a"b`, config.NewAppearance("tooltip", `"q"`), `[tooltip = "q" label = "a"b"]`},
		{"label separator", `api\nv1`, config.Appearance{}, `[label = "api\nv1"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAttrs(tt.label, tt.attrs); got != tt.want {
				t.Errorf("FormatAttrs() = %s, want %s", got, tt.want)
			}
		})
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, stderrors.New("disk full") }

func TestWriteComponent(t *testing.T) {
	set := testSet(t)
	api := loadAPI(t, set)

	var buf bytes.Buffer
	if err := WriteComponent(&buf, set, api); err != nil {
		t.Fatalf("WriteComponent() error: %v", err)
	}
	want, _ := Component(set, api)
	if buf.String() != want {
		t.Errorf("WriteComponent() wrote\n%s\nwant:\n%s", buf.String(), want)
	}

	if err := WriteComponent(failWriter{}, set, api); !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("WriteComponent(failWriter) error = %v, want IO_ERROR", err)
	}
}

func TestWriteComponent_ForeignType(t *testing.T) {
	set := testSet(t)
	other, err := config.Resolve(&config.Document{
		Components: []config.ComponentType{{Name: "queue", UniqueKeys: []string{"name"}}},
	})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	c, err := model.BuildComponent(other, model.Attributes{"type": "queue", "name": "jobs"})
	if err != nil {
		t.Fatalf("BuildComponent() error: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteComponent(&buf, set, c); !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("WriteComponent() error = %v, want INTERNAL_ERROR", err)
	}
	if buf.Len() != 0 {
		t.Errorf("WriteComponent() wrote %d bytes on error", buf.Len())
	}
}

func TestValidate(t *testing.T) {
	set := testSet(t)
	src, err := Component(set, loadAPI(t, set))
	if err != nil {
		t.Fatalf("Component() error: %v", err)
	}

	ctx := context.Background()
	if err := Validate(ctx, src); err != nil {
		t.Errorf("Validate(generated) error: %v", err)
	}
	if err := Validate(ctx, "digraph G {\n    \"a\" -> \n"); !errors.Is(err, errors.ErrCodeInvalidDOT) {
		t.Errorf("Validate(truncated) error = %v, want INVALID_DOT", err)
	}
}
