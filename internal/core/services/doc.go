// Package services implements the driving ports: the scrape run, document
// ingest and collection reports. Services depend only on driven ports, so
// the gob.ec client, CSV files and document stores are swapped freely in
// tests.
package services
