package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vrajpatel/book-keeper/internal/database/books"
	"github.com/vrajpatel/book-keeper/internal/stats"
)

// StatsController serves the aggregate counts screen. Everything is
// recomputed per request from the full snapshot.
type StatsController struct {
	repo *books.Repository
}

func NewStatsController(repo *books.Repository) *StatsController {
	return &StatsController{repo: repo}
}

func (controller *StatsController) GetStats(c *gin.Context) {
	allBooks, err := controller.repo.ListAll()
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summary := stats.Summarize(allBooks)
	c.IndentedJSON(http.StatusOK, gin.H{
		"total":    summary.Total,
		"read":     summary.Read,
		"unread":   summary.Unread,
		"by_shelf": stats.GroupByShelf(allBooks),
	})
}
