// Package manifest converts action maps to and from the vendor "In Game
// Actions" manifest and generates controller layouts from a manifest.
//
// Manifests use the KeyValues text format: quoted keys followed by either a
// quoted string or a braced block of further pairs. Key order is preserved
// everywhere, so conversion and generation are deterministic and follow the
// declaration order of maps and actions.
package manifest
