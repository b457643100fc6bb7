// Package database provides SQLite connectivity for the scenario state core.
//
// This package manages:
//   - Connection setup with WAL mode, foreign keys and a busy timeout
//   - A single-connection pool (SQLite has one writer)
//   - Versioned schema migrations embedded into the binary
//   - Health checks
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{Path: cfg.Database.Path, WALMode: true, BusyTimeout: 5})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
//
// Migrations are additive: new columns are NULLABLE or carry a DEFAULT, and
// each .up.sql has a matching .down.sql.
package database
