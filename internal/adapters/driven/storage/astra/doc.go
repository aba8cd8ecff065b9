// Package astra implements driven.DocumentStore on the DataStax Astra DB
// Data API (JSON over HTTPS).
//
// Requests are POSTed to {endpoint}/api/json/v1/{keyspace} for keyspace
// commands (findCollections, createCollection) and to
// {endpoint}/api/json/v1/{keyspace}/{collection} for collection commands
// (insertOne, find). The application token travels in the Token header.
package astra
