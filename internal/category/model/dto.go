package model

// CategoryRequest is the body of create and update category requests.
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}
