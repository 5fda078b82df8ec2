package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vrajpatel/book-keeper/internal/collection"
	"github.com/vrajpatel/book-keeper/internal/prefs"
)

// SettingsController serves the persisted view settings, currently just the
// sort-order preference the list screen starts from.
type SettingsController struct {
	viewPrefs prefs.Store
}

func NewSettingsController(viewPrefs prefs.Store) *SettingsController {
	return &SettingsController{viewPrefs: viewPrefs}
}

func (controller *SettingsController) GetSortOrder(c *gin.Context) {
	value := controller.viewPrefs.GetInt(prefs.KeySortOrder, 0)
	mode := collection.SortModeFrom(value)
	c.IndentedJSON(http.StatusOK, gin.H{"sort_order": int(mode), "sort": mode.String()})
}

func (controller *SettingsController) SetSortOrder(c *gin.Context) {
	var req struct {
		SortOrder *int `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.SortOrder == nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "sort_order is required"})
		return
	}

	mode := collection.SortModeFrom(*req.SortOrder)
	if err := controller.viewPrefs.PutInt(prefs.KeySortOrder, int(mode)); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"sort_order": int(mode), "sort": mode.String()})
}
