package config

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// SetupDatabase initializes the database connection
func SetupDatabase(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// createTables creates the necessary tables in the database
func createTables(db *sqlx.DB) error {
	// Create users table
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(10) NOT NULL DEFAULT 'member',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create books table. The check constraints back up the lending
	// invariant: available copies never go negative and never exceed the
	// copies owned.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS books (
			id VARCHAR(36) PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			author VARCHAR(255) NOT NULL,
			isbn VARCHAR(32) UNIQUE NOT NULL,
			publication_date TIMESTAMP NOT NULL,
			genre VARCHAR(100) NOT NULL,
			total_copies INTEGER NOT NULL CHECK (total_copies >= 0),
			available_copies INTEGER NOT NULL CHECK (available_copies >= 0),
			description TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			CHECK (available_copies <= total_copies)
		)
	`)
	if err != nil {
		return err
	}

	// Create borrow_records table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS borrow_records (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id),
			book_id VARCHAR(36) NOT NULL REFERENCES books(id),
			borrow_date TIMESTAMP NOT NULL,
			due_date TIMESTAMP NOT NULL,
			return_date TIMESTAMP,
			status VARCHAR(10) NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// One active loan per (user, book); the second concurrent writer hits a
	// unique violation instead of creating a duplicate.
	_, err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_borrow
		ON borrow_records (user_id, book_id)
		WHERE status = 'borrowed'
	`)
	if err != nil {
		return err
	}

	// Create indexes for better performance
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_borrow_records_user_id ON borrow_records(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_borrow_records_book_id ON borrow_records(book_id)",
		"CREATE INDEX IF NOT EXISTS idx_borrow_records_status ON borrow_records(status)",
		"CREATE INDEX IF NOT EXISTS idx_books_genre ON books(genre)",
		"CREATE INDEX IF NOT EXISTS idx_books_author ON books(author)",
	}

	for _, idx := range indexes {
		_, err = db.Exec(idx)
		if err != nil {
			log.Printf("Warning: Failed to create index: %v", err)
			// Don't return error here, indexes are not critical
		}
	}

	return nil
}
