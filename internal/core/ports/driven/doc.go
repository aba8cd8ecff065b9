// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - Catalog: The gob.ec institutions/tramites API (connectors/gobec)
//   - RecordExporter / RecordReader: CSV files (adapters/driven/csvfile)
//   - DocumentStore: Named document collections (sqlite, memory, astra)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
