package model

import "time"

// Category defaults
const (
	DefaultCategoryColor = "#FFB7C5"
	DefaultCategoryIcon  = "🌸"
)

// Category groups tasks. Names are unique per owning user.
type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
