package model

import "github.com/squadboard/squadboard-api/internal/apperror"

var (
	// ErrCategoryNotFound indicates the category does not exist in the caller's team.
	ErrCategoryNotFound = apperror.NotFound("category not found")
	// ErrCategoryExists indicates the team already has a category with this name.
	ErrCategoryExists = apperror.Conflict("category with this name already exists")
	// ErrCategoryInUse indicates events or payments still reference the category.
	ErrCategoryInUse = apperror.Conflict("category is still referenced by events or payments")
	// ErrInvalidCategoryName indicates an empty category name.
	ErrInvalidCategoryName = apperror.Validation("category name is required")
)
