// Package middleware groups the Fiber middleware components of the importer.
//
// # Components
//
//   - rayid: assigns every request a ray ID (UUID), stored in the request
//     context and echoed in the X-Ray-Id response header so log lines can be
//     correlated with client reports.
//   - auth: validates the X-Api-Key header against the configured API key and
//     rejects unauthenticated requests. With no key configured it passes
//     everything through.
//
// Registration order matters: rayid runs first so even rejected requests are
// traceable.
package middleware
