// Package model builds components, relations and groups from record
// documents and a resolved [config.Set].
//
// A component's identity is its type name followed by the values of the
// type's unique keys, joined by "/". Two records of the same type with the
// same unique-key values always produce the same identity, which is how
// groups and the run-wide [Registry] find components declared elsewhere.
//
//	rec := &model.Record{
//	    Kind:      model.KindComponent,
//	    Component: model.Attributes{"type": "service", "name": "api"},
//	    Dependencies: []model.Attributes{{
//	        "type": "database", "name": "users",
//	        "relations": []any{map[string]any{"type": "reads"}},
//	    }},
//	}
//	c, err := model.LoadComponent(set, rec)
//
// [config.Set]: github.com/matzehuels/felipe/pkg/config.Set
package model
