// Package file provides the TOML-backed configuration of the tramites CLI.
//
// The file lives at ~/.tramites/config.toml unless another path is given.
// Missing keys keep their defaults, and a handful of environment variables
// override the file so secrets need not be written to disk.
package file
