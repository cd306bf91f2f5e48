// Package io reads record documents from JSON.
//
// # Record Format
//
// A component record declares one component and its direct dependencies.
// Each dependency may list the relations through which the component
// depends on it:
//
//	{
//	  "kind": "component",
//	  "component": {"type": "service", "name": "api", "version": "1.4"},
//	  "dependencies": [
//	    {
//	      "type": "database", "name": "users",
//	      "relations": [{"type": "reads"}, {"type": "writes"}]
//	    }
//	  ]
//	}
//
// A group record lists components that are rendered together:
//
//	{
//	  "kind": "group",
//	  "group": {"components": [{"type": "service", "name": "api"}]}
//	}
//
// Any other "kind" decodes successfully; the model layer decides to skip it.
// Every field other than kind, type and relations is an attribute, kept
// with its JSON value. Numbers are decoded as json.Number so identities and
// labels reuse the exact source text.
package io
