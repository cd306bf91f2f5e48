// Package config loads styling configuration and flattens its type
// hierarchies.
//
// # Overview
//
// A configuration document declares component types and relation types.
// Each type may name another type of the same kind as its base, forming
// chains that are resolved once at startup into a read-only [Set]:
//
//	base_component:
//	  unique_keys: [name]
//	  appearance: {shape: box}
//	components:
//	  service:
//	    label_keys: [name, version]
//	    appearance: {color: blue}
//	  database:
//	    base: service
//	    appearance: {shape: cylinder}
//
// Here "database" resolves to unique_keys [name], label_keys
// [name, version] and appearance {shape: cylinder, color: blue}.
//
// # Resolution Rules
//
//   - The default type (base_component / base_relation) seeds every chain
//   - Types are applied from the root of the chain down to the resolved type
//   - unique_keys and label_keys are replaced wholesale by a non-empty list
//   - appearance keys overwrite inherited keys one at a time
//   - relation direction is the type's own, else the default's
//
// A base naming an undeclared type and a chain that loops back on itself
// are both fatal configuration errors. See [Resolve].
//
// # Formats
//
// YAML is the primary format. TOML documents with the same shape are
// accepted when the file ends in .toml. Appearance maps keep their
// declaration order in both formats, so generated graphs are stable.
package config
