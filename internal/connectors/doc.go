// Package connectors holds clients for the remote catalogs tramites reads
// from. Each connector implements driven.Catalog for one source.
package connectors
