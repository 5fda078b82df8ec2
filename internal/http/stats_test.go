package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statsResponse struct {
	Total   int            `json:"total"`
	Read    int            `json:"read"`
	Unread  int            `json:"unread"`
	ByShelf map[string]int `json:"by_shelf"`
}

func TestGetStats(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	getStats := func(t *testing.T) statsResponse {
		t.Helper()
		w := doJSON(t, api, "GET", "/api/stats", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp statsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp
	}

	t.Run("empty catalog", func(t *testing.T) {
		resp := getStats(t)
		assert.Zero(t, resp.Total)
		assert.Empty(t, resp.ByShelf)
	})

	t.Run("counts refresh after writes", func(t *testing.T) {
		seed := []string{
			`{"title": "Dune", "author": "Frank Herbert", "shelf_location": "SciFi", "read_status": true}`,
			`{"title": "Anathem", "author": "Neal Stephenson", "shelf_location": "SciFi", "read_status": true}`,
			`{"title": "Hatchet", "author": "Gary Paulsen", "shelf_location": "Default"}`,
		}
		for _, body := range seed {
			w := doJSON(t, api, "POST", "/api/books", body)
			require.Equal(t, http.StatusCreated, w.Code)
		}

		resp := getStats(t)
		assert.Equal(t, 3, resp.Total)
		assert.Equal(t, 2, resp.Read)
		assert.Equal(t, 1, resp.Unread)
		assert.Equal(t, resp.Total, resp.Read+resp.Unread)
		assert.Equal(t, map[string]int{"SciFi": 2, "Default": 1}, resp.ByShelf)
	})

	t.Run("a deleted shelf still groups under its stored name", func(t *testing.T) {
		// The books keep the SciFi string even though the shelf is not
		// registered; grouping reads the record, not the registry.
		resp := getStats(t)
		assert.Equal(t, 2, resp.ByShelf["SciFi"])
	})
}
