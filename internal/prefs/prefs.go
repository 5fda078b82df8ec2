// Package prefs exposes the persisted key-value preference groups the catalog
// components depend on. A Store is scoped to one named group; values live as
// settings rows in the main database.
package prefs

import (
	"fmt"
	"strconv"

	"github.com/vrajpatel/book-keeper/internal/database/settings"
)

// Preference groups. Shelf and view state live apart from the signed-in user's
// session data.
const (
	GroupShelves = "shelves"
	GroupUser    = "user"
)

// Keys within GroupShelves.
const (
	KeyShelfNames    = "shelf_names"
	KeyLastUsedShelf = "last_used_shelf"
	KeySortOrder     = "layout_view"
)

// Keys within GroupUser.
const (
	KeyUserID   = "user_id"
	KeyUsername = "username"
	KeyEmail    = "email"
	KeyName     = "name"
)

// SignedOutUserID is the sentinel stored under KeyUserID when nobody is
// signed in.
const SignedOutUserID = -999

// Store is a persistent string/int map scoped to a preference group.
type Store interface {
	GetString(key, fallback string) string
	PutString(key, value string) error
	GetInt(key string, fallback int) int
	PutInt(key string, value int) error
}

// Settings is the database-backed Store implementation.
type Settings struct {
	repo  *settings.Repository
	group string
}

var _ Store = (*Settings)(nil)

// New binds a Store to one preference group.
func New(repo *settings.Repository, group string) *Settings {
	return &Settings{repo: repo, group: group}
}

// GetString returns the stored value, or fallback when the key is absent or
// unreadable.
func (s *Settings) GetString(key, fallback string) string {
	setting, err := s.repo.GetSetting(s.group, key)
	if err != nil {
		return fallback
	}
	return setting.Value
}

func (s *Settings) PutString(key, value string) error {
	if err := s.repo.SetSetting(s.group, key, value); err != nil {
		return fmt.Errorf("failed to store preference %s/%s: %w", s.group, key, err)
	}
	return nil
}

// GetInt returns the stored value, or fallback when the key is absent or not
// an integer.
func (s *Settings) GetInt(key string, fallback int) int {
	setting, err := s.repo.GetSetting(s.group, key)
	if err != nil {
		return fallback
	}
	value, err := strconv.Atoi(setting.Value)
	if err != nil {
		return fallback
	}
	return value
}

func (s *Settings) PutInt(key string, value int) error {
	return s.PutString(key, strconv.Itoa(value))
}
