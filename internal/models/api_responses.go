package models

// ResultResponse describes the active result for the JSON API.
type ResultResponse struct {
	Record     *Record `json:"record"`
	Error      string  `json:"error,omitempty"`
	Search     string  `json:"search,omitempty"`
	IsFavorite bool    `json:"is_favorite"`
}

// FavoriteResponse reports whether a handle is a stored favorite.
type FavoriteResponse struct {
	Login    string `json:"login"`
	Favorite bool   `json:"favorite"`
}

// SearchRequest carries a pending search key.
type SearchRequest struct {
	Search string `json:"search" form:"search"`
}
