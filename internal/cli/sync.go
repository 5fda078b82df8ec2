package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vrajpatel/book-keeper/internal/config"
	"github.com/vrajpatel/book-keeper/internal/database"
	"github.com/vrajpatel/book-keeper/internal/database/books"
	"github.com/vrajpatel/book-keeper/internal/database/settings"
	"github.com/vrajpatel/book-keeper/internal/prefs"
	"github.com/vrajpatel/book-keeper/internal/remote"
	"github.com/vrajpatel/book-keeper/internal/shelves"
)

// SyncCommand pushes the full local catalog to the remote server.
type SyncCommand struct {
	DatabasePath string
	ServerURL    string
	Timeout      time.Duration
	Verbose      bool
}

// NewSyncCommand creates a new SyncCommand
func NewSyncCommand() *SyncCommand {
	return &SyncCommand{}
}

// ParseFlags parses command line flags
func (cmd *SyncCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local catalog database file")
	fs.StringVar(&cmd.ServerURL, "server", os.Getenv("REMOTE_URL"), "Base URL of the remote catalog server")
	fs.DurationVar(&cmd.Timeout, "timeout", 5*time.Minute, "Overall timeout for the sync run")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Log every pushed book and shelf")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s sync [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Push every shelf and book in the local catalog to the remote server.\n\n")
		fmt.Fprintf(os.Stderr, "Requires a signed-in account: run the server and log in first, or the\n")
		fmt.Fprintf(os.Stderr, "stored account id will be missing and the command will refuse to push.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s sync\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s sync -db ~/books/book-keeper.db -server https://books.example.com\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	return nil
}

// Run executes the sync command
func (cmd *SyncCommand) Run() error {
	fmt.Println("📚 Book Keeper Sync")
	fmt.Println("===================")

	if cmd.ServerURL == "" {
		return fmt.Errorf("no remote server configured: pass -server or set REMOTE_URL")
	}

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	cmd.DatabasePath = absDBPath

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	fmt.Printf("📁 Database: %s\n", cmd.DatabasePath)
	fmt.Printf("🌐 Server: %s\n", cmd.ServerURL)

	settingsRepo := settings.NewRepository(db.DB)
	userPrefs := prefs.New(settingsRepo, prefs.GroupUser)
	userID := userPrefs.GetInt(prefs.KeyUserID, prefs.SignedOutUserID)
	if userID == prefs.SignedOutUserID {
		return fmt.Errorf("not signed in: log in through the server before syncing")
	}

	booksRepo := books.NewRepository(db.DB)
	registry := shelves.NewRegistry(prefs.New(settingsRepo, prefs.GroupShelves))
	client := remote.NewClient(cmd.ServerURL)

	ctx, cancel := context.WithTimeout(context.Background(), cmd.Timeout)
	defer cancel()

	shelfNames := registry.List()

	var failed int
	for _, name := range shelfNames {
		if err := client.PushShelf(ctx, userID, name); err != nil {
			fmt.Fprintf(os.Stderr, "⚠️  Failed to push shelf %q: %v\n", name, err)
			failed++
			continue
		}
		if cmd.Verbose {
			fmt.Printf("  shelf: %s\n", name)
		}
	}

	allBooks, err := booksRepo.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list books: %w", err)
	}

	for _, book := range allBooks {
		if err := client.PushBook(ctx, userID, book); err != nil {
			fmt.Fprintf(os.Stderr, "⚠️  Failed to push %q by %s: %v\n", book.Title, book.Author, err)
			failed++
			continue
		}
		if cmd.Verbose {
			fmt.Printf("  book: %s by %s\n", book.Title, book.Author)
		}
	}

	fmt.Printf("\n✅ Pushed %d shelves and %d books", len(shelfNames), len(allBooks))
	if failed > 0 {
		fmt.Printf(" (%d failures)", failed)
	}
	fmt.Println()

	if failed > 0 {
		return fmt.Errorf("%d items failed to push", failed)
	}
	return nil
}
