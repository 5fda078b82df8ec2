package settings

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vrajpatel/book-keeper/internal/database"
)

func setupTestRepo(t *testing.T) (*Repository, func()) {
	t.Helper()
	dbPath := "./test_" + t.Name() + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return NewRepository(db.DB), cleanup
}

func TestSettings(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	t.Run("missing key returns record not found", func(t *testing.T) {
		_, err := repo.GetSetting("shelves", "shelf_names")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("SetSetting creates and GetSetting reads back", func(t *testing.T) {
		require.NoError(t, repo.SetSetting("shelves", "shelf_names", "Default@SciFi"))

		setting, err := repo.GetSetting("shelves", "shelf_names")
		require.NoError(t, err)
		assert.Equal(t, "Default@SciFi", setting.Value)
	})

	t.Run("SetSetting overwrites in place", func(t *testing.T) {
		require.NoError(t, repo.SetSetting("shelves", "shelf_names", "Default"))

		setting, err := repo.GetSetting("shelves", "shelf_names")
		require.NoError(t, err)
		assert.Equal(t, "Default", setting.Value)
	})

	t.Run("the same key in another group is independent", func(t *testing.T) {
		require.NoError(t, repo.SetSetting("user", "shelf_names", "unrelated"))

		setting, err := repo.GetSetting("shelves", "shelf_names")
		require.NoError(t, err)
		assert.Equal(t, "Default", setting.Value)
	})

	t.Run("DeleteSetting removes only the named pair", func(t *testing.T) {
		require.NoError(t, repo.DeleteSetting("shelves", "shelf_names"))

		_, err := repo.GetSetting("shelves", "shelf_names")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		setting, err := repo.GetSetting("user", "shelf_names")
		require.NoError(t, err)
		assert.Equal(t, "unrelated", setting.Value)
	})
}
