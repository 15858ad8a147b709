package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram-app/backend/internal/middleware"
	"github.com/foodgram-app/backend/internal/models"
	"github.com/foodgram-app/backend/internal/service"
	"github.com/foodgram-app/backend/internal/types"
)

// RecipeHandler serves recipe CRUD, the favorite/cart toggles and the
// shopping-list download.
type RecipeHandler struct {
	recipes *service.RecipeService
	users   *service.UserService
}

func NewRecipeHandler(recipes *service.RecipeService, users *service.UserService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, users: users}
}

func (h *RecipeHandler) List(c *gin.Context) {
	viewerID := middleware.CurrentUserID(c)

	filter := service.RecipeFilter{}
	filter.Page, filter.Limit = pageParams(c)
	if author := c.Query("author"); author != "" {
		id, err := uuid.Parse(author)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
			return
		}
		filter.AuthorID = &id
	}
	filter.TagSlugs = c.QueryArray("tags")
	// viewer-scoped filters are meaningless for anonymous requests
	if viewerID != uuid.Nil {
		if c.Query("is_favorited") == "1" {
			filter.FavoritedBy = &viewerID
		}
		if c.Query("is_in_shopping_cart") == "1" {
			filter.InCartOf = &viewerID
		}
	}

	recipes, count, err := h.recipes.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	viewer, err := h.users.Viewer(c.Request.Context(), viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.PageResponse{
		Count:   count,
		Results: types.NewRecipeResponses(recipes, viewer),
	})
}

func (h *RecipeHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	viewer, err := h.users.Viewer(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewRecipeResponse(recipe, viewer))
}

func (h *RecipeHandler) Create(c *gin.Context) {
	var input types.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.CurrentUserID(c)
	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), userID, &input)
	if err != nil {
		respondError(c, err)
		return
	}

	viewer, err := h.users.Viewer(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.NewRecipeResponse(recipe, viewer))
}

func (h *RecipeHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var input types.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.CurrentUserID(c)
	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), id, userID, &input)
	if err != nil {
		respondError(c, err)
		return
	}

	viewer, err := h.users.Viewer(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewRecipeResponse(recipe, viewer))
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id, middleware.CurrentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) Favorite(c *gin.Context) {
	h.addMarker(c, h.recipes.Favorite)
}

func (h *RecipeHandler) Unfavorite(c *gin.Context) {
	h.removeMarker(c, h.recipes.Unfavorite)
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.addMarker(c, h.recipes.AddToCart)
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.removeMarker(c, h.recipes.RemoveFromCart)
}

// addMarker runs a marker-creation toggle and renders the compact recipe
// card, never the full read shape.
func (h *RecipeHandler) addMarker(c *gin.Context, add func(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error)) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	recipe, err := add(c.Request.Context(), middleware.CurrentUserID(c), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, types.NewRecipeCard(recipe))
}

func (h *RecipeHandler) removeMarker(c *gin.Context, remove func(ctx context.Context, userID, recipeID uuid.UUID) error) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if err := remove(c.Request.Context(), middleware.CurrentUserID(c), recipeID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DownloadShoppingCart renders the consolidated ingredient list of the
// viewer's cart as a plain text attachment.
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	items, err := h.recipes.ShoppingList(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	body := service.RenderShoppingList(items)
	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", body)
}
