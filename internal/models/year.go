package models

import "time"

// Year is the top of the goal hierarchy. It owns categories, which own actions.
type Year struct {
	ID        string    `json:"id"`
	Year      int       `json:"year"`
	CreatedAt time.Time `json:"created_at"`
}

// Category groups related routine actions under a year.
type Category struct {
	ID        string    `json:"id"`
	YearID    string    `json:"year_id"`
	Name      string    `json:"name"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}
