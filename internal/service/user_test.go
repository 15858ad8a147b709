package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram-app/backend/internal/models"
	"github.com/foodgram-app/backend/internal/types"
)

func TestFollowSelf(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")
	_, err := svc.Follow(ctx, user.ID, user.ID)
	assert.ErrorIs(t, err, ErrSelfFollow)
}

func TestFollowTwice(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	author, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, author.ID)

	_, err = svc.Follow(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestFollowUnknownAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	_, err := svc.Follow(ctx, alice.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnfollowNotFollowed(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	err := svc.Unfollow(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))

	err = svc.Unfollow(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubscriptions(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	recipes := NewRecipeService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	sugar := createTestIngredient(t, db, "sugar", "g")

	for _, name := range []string{"Cake", "Pie", "Tart"} {
		_, err := recipes.CreateRecipe(ctx, bob.ID, recipeInput(name,
			types.IngredientAmountInput{ID: sugar.ID, Amount: 10},
		))
		require.NoError(t, err)
	}

	_, err := users.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	subs, err := users.Subscriptions(ctx, alice.ID, 2)
	require.NoError(t, err)
	require.Len(t, subs, 1)

	sub := subs[0]
	assert.Equal(t, "bob", sub.Username)
	assert.True(t, sub.IsSubscribed)
	assert.EqualValues(t, 3, sub.RecipesCount)
	// recipes truncated to the caller-supplied limit
	assert.Len(t, sub.Recipes, 2)
}

func TestViewerSets(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	recipes := NewRecipeService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	sugar := createTestIngredient(t, db, "sugar", "g")

	recipe, err := recipes.CreateRecipe(ctx, bob.ID, recipeInput("Cake",
		types.IngredientAmountInput{ID: sugar.ID, Amount: 10},
	))
	require.NoError(t, err)

	_, err = users.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = recipes.Favorite(ctx, alice.ID, recipe.ID)
	require.NoError(t, err)

	viewer, err := users.Viewer(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, viewer.FollowsAuthor(bob.ID))
	assert.True(t, viewer.HasFavorited(recipe.ID))
	assert.False(t, viewer.HasInCart(recipe.ID))

	anonymous, err := users.Viewer(ctx, uuid.Nil)
	require.NoError(t, err)
	assert.False(t, anonymous.FollowsAuthor(bob.ID))
	assert.False(t, anonymous.HasFavorited(recipe.ID))
}

func TestViewerFlagsInResponses(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	recipes := NewRecipeService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	sugar := createTestIngredient(t, db, "sugar", "g")

	recipe, err := recipes.CreateRecipe(ctx, bob.ID, recipeInput("Cake",
		types.IngredientAmountInput{ID: sugar.ID, Amount: 10},
	))
	require.NoError(t, err)
	_, err = recipes.Favorite(ctx, alice.ID, recipe.ID)
	require.NoError(t, err)
	_, err = users.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	viewer, err := users.Viewer(ctx, alice.ID)
	require.NoError(t, err)

	resp := types.NewRecipeResponse(recipe, viewer)
	assert.True(t, resp.IsFavorited)
	assert.False(t, resp.IsInShoppingCart)
	assert.True(t, resp.Author.IsSubscribed)
}
