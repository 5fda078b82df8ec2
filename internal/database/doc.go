// Package database provides the data access layer for the catalog.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, versioned schema migrations
//	├── books/           # Book catalog CRUD and duplicate policy
//	└── settings/        # Grouped key/value settings rows
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./book-keeper.db")
//
//	// Create domain-specific repositories
//	booksRepo := books.NewRepository(db.DB)
//	settingsRepo := settings.NewRepository(db.DB)
//
//	// Use repositories
//	book, err := booksRepo.Add("Dune", "Frank Herbert", "Default", false)
//
// # Schema versioning
//
// The schema version lives in SQLite's user_version pragma. Migrations are a
// forward-only ordered list; each step is additive and never rewrites or drops
// existing rows. Opening a store whose version already matches the target is a
// no-op, and a store created by a newer build is refused rather than altered.
package database
