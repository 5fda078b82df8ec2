package http

import (
	"github.com/gin-gonic/gin"

	"github.com/vrajpatel/book-keeper/internal/database"
	"github.com/vrajpatel/book-keeper/internal/database/books"
	"github.com/vrajpatel/book-keeper/internal/prefs"
	"github.com/vrajpatel/book-keeper/internal/remote"
	"github.com/vrajpatel/book-keeper/internal/shelves"
	"github.com/vrajpatel/book-keeper/internal/tasks"
)

// RouterConfig carries all dependencies the router needs, keeping the
// constructor signature flat and the controllers testable.
type RouterConfig struct {
	Database     *database.Database
	BooksRepo    *books.Repository
	Registry     *shelves.Registry
	ViewPrefs    prefs.Store
	UserPrefs    prefs.Store
	RemoteClient *remote.Client
	TaskClient   *tasks.Client
	Version      string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg.BooksRepo, cfg.Registry, cfg.ViewPrefs, cfg.UserPrefs, cfg.TaskClient)
	shelvesController := NewShelvesController(cfg.Registry, cfg.UserPrefs, cfg.TaskClient)
	statsController := NewStatsController(cfg.BooksRepo)
	settingsController := NewSettingsController(cfg.ViewPrefs)
	sessionController := NewSessionController(cfg.RemoteClient, cfg.UserPrefs)

	api := router.Group("/api")
	{
		api.GET("/health", health.Status)

		api.GET("/books", booksController.ListBooks)
		api.POST("/books", booksController.CreateBook)
		api.PUT("/books/:id", booksController.UpdateBook)
		api.DELETE("/books/:id", booksController.DeleteBook)

		api.GET("/shelves", shelvesController.ListShelves)
		api.POST("/shelves", shelvesController.CreateShelf)
		api.DELETE("/shelves/:name", shelvesController.DeleteShelf)
		api.GET("/shelves/last-used", shelvesController.GetLastUsed)
		api.PUT("/shelves/last-used", shelvesController.SetLastUsed)

		api.GET("/stats", statsController.GetStats)

		api.GET("/settings/sort-order", settingsController.GetSortOrder)
		api.PUT("/settings/sort-order", settingsController.SetSortOrder)

		api.POST("/auth/login", sessionController.Login)
		api.POST("/auth/signup", sessionController.SignUp)
		api.POST("/auth/logout", sessionController.Logout)
		api.GET("/auth/me", sessionController.CurrentUser)
	}

	return router
}
