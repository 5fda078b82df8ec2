package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vrajpatel/book-keeper/internal/config"
	"github.com/vrajpatel/book-keeper/internal/database"
	"github.com/vrajpatel/book-keeper/internal/database/books"
	"github.com/vrajpatel/book-keeper/internal/stats"
)

// StatsCommand prints read/unread and per-shelf counts for the catalog.
type StatsCommand struct {
	DatabasePath string
}

// NewStatsCommand creates a new StatsCommand
func NewStatsCommand() *StatsCommand {
	return &StatsCommand{}
}

// ParseFlags parses command line flags
func (cmd *StatsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local catalog database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s stats [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print total, read and unread counts plus per-shelf book counts.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	return nil
}

// Run executes the stats command
func (cmd *StatsCommand) Run() error {
	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	db, err := database.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	repo := books.NewRepository(db.DB)
	allBooks, err := repo.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list books: %w", err)
	}

	summary := stats.Summarize(allBooks)
	byShelf := stats.GroupByShelf(allBooks)

	fmt.Println("📚 Book Keeper Stats")
	fmt.Println("====================")
	fmt.Printf("Total:  %d\n", summary.Total)
	fmt.Printf("Read:   %d\n", summary.Read)
	fmt.Printf("Unread: %d\n", summary.Unread)

	if len(byShelf) > 0 {
		names := make([]string, 0, len(byShelf))
		for name := range byShelf {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Println("\nBy shelf:")
		for _, name := range names {
			fmt.Printf("  %-20s %d\n", name, byShelf[name])
		}
	}

	return nil
}
