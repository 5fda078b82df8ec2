package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vrajpatel/book-keeper/internal/collection"
	"github.com/vrajpatel/book-keeper/internal/database/books"
	"github.com/vrajpatel/book-keeper/internal/entities"
	"github.com/vrajpatel/book-keeper/internal/prefs"
	"github.com/vrajpatel/book-keeper/internal/shelves"
	"github.com/vrajpatel/book-keeper/internal/tasks"
)

// BooksController serves the catalog CRUD and the filtered listing. Title
// validation lives here: the repository trusts its callers on emptiness.
type BooksController struct {
	repo       *books.Repository
	registry   *shelves.Registry
	viewPrefs  prefs.Store
	userPrefs  prefs.Store
	taskClient *tasks.Client
}

func NewBooksController(repo *books.Repository, registry *shelves.Registry, viewPrefs, userPrefs prefs.Store, taskClient *tasks.Client) *BooksController {
	return &BooksController{
		repo:       repo,
		registry:   registry,
		viewPrefs:  viewPrefs,
		userPrefs:  userPrefs,
		taskClient: taskClient,
	}
}

type bookRequest struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	ShelfLocation string `json:"shelf_location"`
	ReadStatus    bool   `json:"read_status"`
}

// ListBooks returns the visible subset of the catalog. Query parameters:
// sort (0 title, 1 author, 2 shelf; defaults to the stored preference),
// q (substring search), read/unread (filter toggles, default true).
func (controller *BooksController) ListBooks(c *gin.Context) {
	allBooks, err := controller.repo.ListAll()
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	mode := collection.SortModeFrom(controller.viewPrefs.GetInt(prefs.KeySortOrder, 0))
	if raw, ok := c.GetQuery("sort"); ok {
		value, err := strconv.Atoi(raw)
		if err != nil {
			c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "sort must be an integer"})
			return
		}
		mode = collection.SortModeFrom(value)
	}

	includeRead := queryBool(c, "read", true)
	includeUnread := queryBool(c, "unread", true)

	visible := collection.Apply(allBooks, mode, c.Query("q"), includeRead, includeUnread)
	c.IndentedJSON(http.StatusOK, gin.H{
		"books": visible,
		"count": len(visible),
		"sort":  mode.String(),
	})
}

// CreateBook adds a book to the catalog. An empty shelf defaults to the
// last-used shelf; a duplicate (title, author) pair is a 409.
func (controller *BooksController) CreateBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Title == "" {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	shelf := req.ShelfLocation
	if shelf == "" {
		shelf = controller.registry.LastUsed()
	}

	book, err := controller.repo.Add(req.Title, req.Author, shelf, req.ReadStatus)
	if errors.Is(err, books.ErrDuplicateBook) {
		c.IndentedJSON(http.StatusConflict, gin.H{"error": "book with this title and author already exists"})
		return
	}
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := controller.registry.SetLastUsed(shelf); err != nil {
		// The book is saved; losing the form default is not worth a failure.
		log.Printf("Failed to remember last-used shelf %q: %v", shelf, err)
	}

	controller.enqueuePush(book.ID)

	c.IndentedJSON(http.StatusCreated, book)
}

// UpdateBook replaces all mutable fields of one record.
func (controller *BooksController) UpdateBook(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Title == "" {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	book := &entities.Book{
		ID:            id,
		Title:         req.Title,
		Author:        req.Author,
		ReadStatus:    req.ReadStatus,
		ShelfLocation: req.ShelfLocation,
	}
	err = controller.repo.Update(book)
	if errors.Is(err, books.ErrBookNotFound) {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	controller.enqueuePush(id)

	c.IndentedJSON(http.StatusOK, book)
}

// DeleteBook removes a record. Deleting an unknown id reports deleted=false
// rather than failing.
func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	removed, err := controller.repo.Delete(id)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"deleted": removed})
}

// enqueuePush queues a remote mirror of the book when a user is signed in and
// the push queue is running.
func (controller *BooksController) enqueuePush(bookID uint) {
	if controller.taskClient == nil {
		return
	}
	userID := controller.userPrefs.GetInt(prefs.KeyUserID, prefs.SignedOutUserID)
	if userID == prefs.SignedOutUserID {
		return
	}
	if _, err := controller.taskClient.Add(tasks.PushBookTask{BookID: bookID, UserID: userID}).Save(); err != nil {
		// Local write already succeeded; the scheduled full sync will catch up.
		log.Printf("Failed to enqueue push for book %d: %v", bookID, err)
	}
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

func queryBool(c *gin.Context, name string, fallback bool) bool {
	raw, ok := c.GetQuery(name)
	if !ok {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
