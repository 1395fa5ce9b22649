// Package database provides connectivity to the gallery database.
//
// Connect opens a GORM handle for the configured driver: mysql for the
// production gallery database, sqlite for local development and tests.
// The DSN carries connect/read/write timeouts and the initial ping is
// bounded by the same timeout, so a misconfigured host fails fast instead
// of hanging a sync run.
//
// # Schema Inspection
//
// TableColumns reads the live column definitions of a table (PRAGMA
// table_info on sqlite, SHOW COLUMNS on mysql) and MissingColumns compares
// them against an expected set. The migrate command uses this to verify the
// artwork_media schema without altering it.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	missing, _ := database.MissingColumns(db, "artwork_media", want)
package database
