package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SchemaVersion is the schema generation this build writes and expects.
// Version 1 was the original title/author table; version 2 added the
// shelf_location column.
const SchemaVersion = 2

type migration struct {
	version int
	apply   func(tx *gorm.DB) error
}

// migrations is the forward-only migration list. Entries are ordered by
// version and each step is additive: no step drops a table or rewrites
// existing rows.
var migrations = []migration{
	{
		version: 1,
		apply: func(tx *gorm.DB) error {
			if err := tx.Exec(`CREATE TABLE IF NOT EXISTS books (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				title TEXT NOT NULL,
				title_key TEXT NOT NULL,
				author TEXT NOT NULL DEFAULT '',
				read_status INTEGER NOT NULL DEFAULT 0
			)`).Error; err != nil {
				return err
			}
			if err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_books_title_key ON books(title_key)`).Error; err != nil {
				return err
			}
			return tx.Exec(`CREATE TABLE IF NOT EXISTS settings (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				group_name TEXT NOT NULL,
				key TEXT NOT NULL,
				value TEXT NOT NULL DEFAULT '',
				created_at DATETIME,
				updated_at DATETIME,
				UNIQUE(group_name, key)
			)`).Error
		},
	},
	{
		version: 2,
		apply: func(tx *gorm.DB) error {
			return tx.Exec(`ALTER TABLE books ADD COLUMN shelf_location TEXT NOT NULL DEFAULT 'Default'`).Error
		},
	},
}

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db, SchemaVersion); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Version reads the stored schema version.
func Version(db *gorm.DB) (int, error) {
	var version int
	if err := db.Raw("PRAGMA user_version").Scan(&version).Error; err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// Migrate brings the store from its recorded version up to target. Equal
// versions are a no-op; a store ahead of target is refused since migrations
// are forward-only.
func Migrate(db *gorm.DB, target int) error {
	current, err := Version(db)
	if err != nil {
		return err
	}

	if current == target {
		return nil
	}
	if current > target {
		return fmt.Errorf("database schema version %d is newer than supported version %d", current, target)
	}

	for _, m := range migrations {
		if m.version <= current || m.version > target {
			continue
		}
		log.Printf("Applying schema migration %d -> %d", current, m.version)
		err := db.Transaction(func(tx *gorm.DB) error {
			return m.apply(tx)
		})
		if err != nil {
			return fmt.Errorf("migration to version %d failed: %w", m.version, err)
		}
		// PRAGMA cannot be parameterized; version comes from the static list.
		if err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.version)).Error; err != nil {
			return fmt.Errorf("failed to record schema version %d: %w", m.version, err)
		}
		current = m.version
	}

	if current != target {
		return fmt.Errorf("no migration path to schema version %d (reached %d)", target, current)
	}
	return nil
}
