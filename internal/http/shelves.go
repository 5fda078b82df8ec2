package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vrajpatel/book-keeper/internal/prefs"
	"github.com/vrajpatel/book-keeper/internal/shelves"
	"github.com/vrajpatel/book-keeper/internal/tasks"
)

// ShelvesController serves the shelf registry backing the add/edit pickers.
type ShelvesController struct {
	registry   *shelves.Registry
	userPrefs  prefs.Store
	taskClient *tasks.Client
}

func NewShelvesController(registry *shelves.Registry, userPrefs prefs.Store, taskClient *tasks.Client) *ShelvesController {
	return &ShelvesController{
		registry:   registry,
		userPrefs:  userPrefs,
		taskClient: taskClient,
	}
}

func (controller *ShelvesController) ListShelves(c *gin.Context) {
	names := controller.registry.List()
	c.IndentedJSON(http.StatusOK, gin.H{
		"shelves":   names,
		"count":     len(names),
		"last_used": controller.registry.LastUsed(),
	})
}

func (controller *ShelvesController) CreateShelf(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if err := controller.registry.Add(req.Name); err != nil {
		if errors.Is(err, shelves.ErrInvalidShelfName) {
			c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	controller.enqueuePush(req.Name)

	c.IndentedJSON(http.StatusCreated, gin.H{"shelves": controller.registry.List()})
}

func (controller *ShelvesController) DeleteShelf(c *gin.Context) {
	name := c.Param("name")

	err := controller.registry.Remove(name)
	if errors.Is(err, shelves.ErrDefaultShelf) {
		c.IndentedJSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, shelves.ErrShelfNotFound) {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "shelf not found"})
		return
	}
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"shelves": controller.registry.List()})
}

func (controller *ShelvesController) GetLastUsed(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{"last_used": controller.registry.LastUsed()})
}

func (controller *ShelvesController) SetLastUsed(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if err := controller.registry.SetLastUsed(req.Name); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"last_used": controller.registry.LastUsed()})
}

func (controller *ShelvesController) enqueuePush(name string) {
	if controller.taskClient == nil {
		return
	}
	userID := controller.userPrefs.GetInt(prefs.KeyUserID, prefs.SignedOutUserID)
	if userID == prefs.SignedOutUserID {
		return
	}
	if _, err := controller.taskClient.Add(tasks.PushShelfTask{Name: name, UserID: userID}).Save(); err != nil {
		log.Printf("Failed to enqueue push for shelf %q: %v", name, err)
	}
}
