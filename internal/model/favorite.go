package model

import "time"

// Favorite links a user to a coffee they saved
type Favorite struct {
	UserID    string    `json:"user_id"`
	CoffeeID  string    `json:"coffee_id"`
	CreatedOn time.Time `json:"created_on"`
}

// FavoriteStatus reports whether a coffee is favorited by the caller
type FavoriteStatus struct {
	CoffeeID   string `json:"coffee_id"`
	IsFavorite bool   `json:"is_favorite"`
}
