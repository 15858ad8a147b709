package types

import "github.com/google/uuid"

// Viewer carries the per-request id sets used to compute the is_favorited,
// is_in_shopping_cart and is_subscribed flags. The sets are loaded once per
// request and membership-tested per item, instead of issuing one existence
// query per rendered row. A zero Viewer is an anonymous viewer.
type Viewer struct {
	UserID    uuid.UUID
	Follows   map[uuid.UUID]bool
	Favorites map[uuid.UUID]bool
	Carts     map[uuid.UUID]bool
}

func (v *Viewer) FollowsAuthor(authorID uuid.UUID) bool {
	return v != nil && v.Follows[authorID]
}

func (v *Viewer) HasFavorited(recipeID uuid.UUID) bool {
	return v != nil && v.Favorites[recipeID]
}

func (v *Viewer) HasInCart(recipeID uuid.UUID) bool {
	return v != nil && v.Carts[recipeID]
}
