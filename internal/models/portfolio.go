package models

import "time"

// PortfolioItem is public reference data shown on the agency site. No
// relationship to submissions.
type PortfolioItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Category    string    `json:"category" gorm:"size:100"`
	URL         string    `json:"url"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}
