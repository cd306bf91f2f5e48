// Package dot writes components and groups as Graphviz DOT documents.
//
// Every document has the same frame:
//
//	digraph G {
//	    rankdir=LR
//	    fontsize=11.0
//	    "service/api" [color = blue label = "api"];
//	    "database/users" [shape = cylinder label = "users"];
//	    "service/api" -> "database/users" [color = red label = ""];
//	}
//
// A component contributes its own node, one node per dependency, and one
// edge per relation. Nodes are styled with the appearance of their own
// type; edges with the appearance of their relation type. A relation whose
// direction is "->" points from the component to the dependency, any other
// direction points the other way.
//
// Group documents repeat that sequence for every member in declaration
// order, in one flat graph body.
//
// Documents are built completely in memory before anything is written, so
// a failing document never leaves partial output behind. [Validate] checks
// a finished document with Graphviz.
package dot
