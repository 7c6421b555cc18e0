// Package material provides the immutable coefficient catalog for thermex.
//
// This package is the leaf of the module: expansion, store, harness and cli
// all import it; it imports nothing internal.
//
// A Catalog is built once, validated as a whole, and never mutated. Lookups
// are exact key matches. Catalogs can be built from literal entries
// (Reference), from CUE files (LoadCUE) or from YAML files (LoadYAML).
//
// Key constraints:
//   - Identifiers are non-empty, unique and NFC normalized
//   - Temperature ranges are inclusive and must satisfy Min < Max
//   - Quality factor lies in [0, 1] and is informational only
//   - Every physical quantity is finite
package material
