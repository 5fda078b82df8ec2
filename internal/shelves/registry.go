// Package shelves manages the ordered list of user-defined shelf names and
// the last-used-shelf default for the add-book form.
//
// Shelf names are persisted as a single delimited string so that user
// ordering survives restarts. An earlier schema generation stored them as an
// unordered set, which lost that ordering; the delimited form is canonical.
package shelves

import (
	"errors"
	"strings"

	"github.com/vrajpatel/book-keeper/internal/entities"
	"github.com/vrajpatel/book-keeper/internal/prefs"
)

// Delimiter separates shelf names in the persisted string. Names containing
// it are rejected outright since the encoding has no escaping.
const Delimiter = "@"

// ErrDefaultShelf is returned when removing the sentinel Default shelf.
var ErrDefaultShelf = errors.New("cannot remove the Default shelf")

// ErrShelfNotFound is returned when removing a name the registry does not hold.
var ErrShelfNotFound = errors.New("shelf not found")

// ErrInvalidShelfName is returned for names that would corrupt the persisted
// encoding.
var ErrInvalidShelfName = errors.New("shelf name must not contain '@'")

// Registry is the ordered, deduplicated list of shelf names.
type Registry struct {
	store prefs.Store
}

// NewRegistry creates a registry over the shelf preference group.
func NewRegistry(store prefs.Store) *Registry {
	return &Registry{store: store}
}

// List returns the persisted shelf names in insertion order. The Default
// shelf is always present; an empty registry is just ["Default"].
func (r *Registry) List() []string {
	stored := r.store.GetString(prefs.KeyShelfNames, "")
	if stored == "" {
		return []string{entities.DefaultShelf}
	}

	names := strings.Split(stored, Delimiter)
	for _, name := range names {
		if name == entities.DefaultShelf {
			return names
		}
	}
	return append([]string{entities.DefaultShelf}, names...)
}

// Add appends a shelf name, preserving insertion order. Empty names and names
// already present are a silent no-op, matching the add-shelf form behavior.
func (r *Registry) Add(name string) error {
	if name == "" {
		return nil
	}
	if strings.Contains(name, Delimiter) {
		return ErrInvalidShelfName
	}

	names := r.List()
	for _, existing := range names {
		if existing == name {
			return nil
		}
	}
	return r.persist(append(names, name))
}

// Remove deletes the first occurrence of name. The Default shelf is
// protected.
func (r *Registry) Remove(name string) error {
	if name == entities.DefaultShelf {
		return ErrDefaultShelf
	}

	names := r.List()
	for i, existing := range names {
		if existing == name {
			return r.persist(append(names[:i:i], names[i+1:]...))
		}
	}
	return ErrShelfNotFound
}

// LastUsed returns the most recently chosen shelf for defaulting a new
// add-book form. When nothing was remembered, or the remembered shelf no
// longer exists, it falls back to the first registered shelf.
func (r *Registry) LastUsed() string {
	names := r.List()
	remembered := r.store.GetString(prefs.KeyLastUsedShelf, entities.DefaultShelf)
	for _, name := range names {
		if name == remembered {
			return remembered
		}
	}
	return names[0]
}

// SetLastUsed remembers the shelf chosen on the most recent add.
func (r *Registry) SetLastUsed(name string) error {
	return r.store.PutString(prefs.KeyLastUsedShelf, name)
}

func (r *Registry) persist(names []string) error {
	return r.store.PutString(prefs.KeyShelfNames, strings.Join(names, Delimiter))
}
