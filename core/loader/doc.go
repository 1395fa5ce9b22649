// Package loader provides the feature loading system of the HTTP server.
//
// Features (the artwork module today, future gallery modules tomorrow)
// implement the Feature interface and register their routes when loaded.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager struct holds the registry of available features. It handles:
//   - Registration of features via Register()
//   - Initialization and loading of enabled features via LoadAll()
//
// Features stay decoupled from the server bootstrap this way; each can be
// developed and tested in isolation.
package loader
