package entities

import (
	"time"
)

// Setting is a single key/value row scoped to a named preference group.
// The two groups mirror the preference files of the mobile app this
// catalog grew out of: one for shelf/view state, one for the signed-in user.
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Group     string    `gorm:"column:group_name;uniqueIndex:idx_settings_group_key;size:100" json:"group"`
	Key       string    `gorm:"uniqueIndex:idx_settings_group_key;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}
