package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// ShoppingListItem is one aggregation group of the shopping list: all cart
// ingredients sharing a name and measurement unit, amounts summed.
type ShoppingListItem struct {
	Name            string
	MeasurementUnit string
	Total           float64
}

// ShoppingList aggregates the ingredient rows of every recipe in the user's
// cart, grouped by (name, measurement unit) and ordered by name.
func (s *RecipeService) ShoppingList(ctx context.Context, userID uuid.UUID) ([]ShoppingListItem, error) {
	var items []ShoppingListItem
	err := s.db.WithContext(ctx).
		Table("ingredient_recipes").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(ingredient_recipes.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = ingredient_recipes.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = ingredient_recipes.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// RenderShoppingList renders the aggregated list as the plain text document
// served by the download endpoint. The format is sequential human-readable
// lines, not meant for round-trip parsing.
func RenderShoppingList(items []ShoppingListItem) []byte {
	var buf bytes.Buffer
	if len(items) == 0 {
		buf.WriteString("Shopping list is empty.\n")
		return buf.Bytes()
	}
	buf.WriteString("Shopping list:\n\n")
	for i, item := range items {
		fmt.Fprintf(&buf, "%d. %s - %s %s\n",
			i+1, item.Name, formatAmount(item.Total), item.MeasurementUnit)
	}
	return buf.Bytes()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
