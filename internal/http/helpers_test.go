package http

import (
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/vrajpatel/book-keeper/internal/database"
	"github.com/vrajpatel/book-keeper/internal/database/books"
	"github.com/vrajpatel/book-keeper/internal/database/settings"
	"github.com/vrajpatel/book-keeper/internal/prefs"
	"github.com/vrajpatel/book-keeper/internal/shelves"
)

// testAPI bundles the wired dependencies behind a test router.
type testAPI struct {
	router    *gin.Engine
	db        *database.Database
	booksRepo *books.Repository
	registry  *shelves.Registry
	viewPrefs prefs.Store
	userPrefs prefs.Store
}

// setupTestAPI wires a fresh file-backed catalog behind the full route set.
// The remote client and push queue stay nil: those paths are covered by their
// own packages.
func setupTestAPI(t *testing.T) (*testAPI, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	settingsRepo := settings.NewRepository(db.DB)
	viewPrefs := prefs.New(settingsRepo, prefs.GroupShelves)
	userPrefs := prefs.New(settingsRepo, prefs.GroupUser)
	booksRepo := books.NewRepository(db.DB)
	registry := shelves.NewRegistry(viewPrefs)

	router := NewRouter(RouterConfig{
		Database:  db,
		BooksRepo: booksRepo,
		Registry:  registry,
		ViewPrefs: viewPrefs,
		UserPrefs: userPrefs,
		Version:   "test",
	})

	api := &testAPI{
		router:    router,
		db:        db,
		booksRepo: booksRepo,
		registry:  registry,
		viewPrefs: viewPrefs,
		userPrefs: userPrefs,
	}
	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return api, cleanup
}
