package types

import (
	"github.com/google/uuid"

	"github.com/foodgram-app/backend/internal/models"
)

// Read shapes. The write shape accepts bare ids; every response re-renders
// through these types with nested objects and viewer-computed flags.

// UserResponse is the read shape of a user
type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

// IngredientAmountResponse is one ingredient line of a recipe read shape
type IngredientAmountResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          float64   `json:"amount"`
}

// RecipeResponse is the full recipe read shape
type RecipeResponse struct {
	ID               uuid.UUID                  `json:"id"`
	Tags             []models.Tag               `json:"tags"`
	Author           UserResponse               `json:"author"`
	Ingredients      []IngredientAmountResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
}

// RecipeCard is the compact recipe shape returned by the favorite and
// shopping-cart toggles and nested under subscriptions.
type RecipeCard struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

// SubscriptionResponse is one followed author with their recipes
type SubscriptionResponse struct {
	UserResponse
	Recipes      []RecipeCard `json:"recipes"`
	RecipesCount int64        `json:"recipes_count"`
}

// PageResponse is the pagination wrapper for list endpoints
type PageResponse struct {
	Count   int64       `json:"count"`
	Results interface{} `json:"results"`
}

// NewUserResponse renders a user through the viewer's follow set.
func NewUserResponse(u *models.User, viewer *Viewer) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: viewer.FollowsAuthor(u.ID),
	}
}

// NewRecipeCard renders the compact recipe shape.
func NewRecipeCard(r *models.Recipe) RecipeCard {
	return RecipeCard{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}

// NewRecipeResponse renders the full read shape. The recipe must have its
// Author, Tags and Ingredients.Ingredient associations preloaded.
func NewRecipeResponse(r *models.Recipe, viewer *Viewer) RecipeResponse {
	resp := RecipeResponse{
		ID:               r.ID,
		Tags:             r.Tags,
		Ingredients:      make([]IngredientAmountResponse, 0, len(r.Ingredients)),
		IsFavorited:      viewer.HasFavorited(r.ID),
		IsInShoppingCart: viewer.HasInCart(r.ID),
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
	if resp.Tags == nil {
		resp.Tags = []models.Tag{}
	}
	if r.Author != nil {
		resp.Author = NewUserResponse(r.Author, viewer)
	}
	for _, ir := range r.Ingredients {
		line := IngredientAmountResponse{
			ID:     ir.IngredientID,
			Amount: ir.Amount,
		}
		if ir.Ingredient != nil {
			line.Name = ir.Ingredient.Name
			line.MeasurementUnit = ir.Ingredient.MeasurementUnit
		}
		resp.Ingredients = append(resp.Ingredients, line)
	}
	return resp
}

// NewRecipeResponses renders a result page, reusing one viewer for every row.
func NewRecipeResponses(recipes []models.Recipe, viewer *Viewer) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, NewRecipeResponse(&recipes[i], viewer))
	}
	return out
}
