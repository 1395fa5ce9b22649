// Package server holds the configuration of the HTTP surface.
//
// The serve command builds a Fiber app from this configuration: Addr gives
// the listen address and AuthEnabled decides whether the API key middleware
// rejects unauthenticated requests.
//
// The importer runs fine without the server; the CLI commands only need the
// storage and database configuration.
package server
