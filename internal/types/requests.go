package types

import "github.com/google/uuid"

// RegisterRequest represents the request body for account registration
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for token login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SetPasswordRequest represents the request body for a password change
type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// IngredientAmountInput is one (ingredient id, amount) pair of a recipe payload
type IngredientAmountInput struct {
	ID     uuid.UUID `json:"id" binding:"required"`
	Amount float64   `json:"amount" binding:"required,gt=0"`
}

// RecipeInput represents the write shape of a recipe. The same complete
// payload is required on create and update: ingredient and tag associations
// are replaced wholesale, never patched incrementally.
type RecipeInput struct {
	Name        string                  `json:"name" binding:"required,max=200"`
	Image       string                  `json:"image"`
	Text        string                  `json:"text" binding:"required"`
	CookingTime int                     `json:"cooking_time" binding:"required,gt=0"`
	Tags        []uuid.UUID             `json:"tags"`
	Ingredients []IngredientAmountInput `json:"ingredients" binding:"required,min=1,dive"`
}
