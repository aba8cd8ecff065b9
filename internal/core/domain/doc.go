// Package domain defines the core business entities for tramites.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Institution: A public institution as listed by the gob.ec API
//   - Tramite: An administrative procedure fetched from its detail endpoint
//   - Record: An ordered key/value row shared by the CSV exporter and stores
//   - Document: A JSON-like document held in a named collection
//   - ProvinceFilter / YearFilter: The two scrape policies
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
