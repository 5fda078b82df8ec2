package entities

import "strings"

// DefaultShelf is the sentinel shelf every catalog carries. It cannot be
// removed and is the shelf new books land on when none is chosen.
const DefaultShelf = "Default"

type Book struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Title         string `gorm:"index;size:512" json:"title"`
	TitleKey      string `gorm:"index;size:512" json:"title_key"` // derived, see TitleKey()
	Author        string `gorm:"index;size:256" json:"author"`
	ReadStatus    bool   `gorm:"default:false" json:"read_status"`
	ShelfLocation string `gorm:"size:256;default:'Default'" json:"shelf_location"`
}

func (Book) TableName() string {
	return "books"
}

// TitleKey folds a title into the case-insensitive form used for the default
// alphabetical ordering and for duplicate detection. It is recomputed from the
// title on every insert and update and is never settable on its own.
func TitleKey(title string) string {
	return strings.ToLower(title)
}
