package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foodgram-app/backend/internal/models"
	"github.com/foodgram-app/backend/internal/types"
)

// UserService handles user reads and the follow relation.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers returns one page of users plus the total count.
func (s *UserService) ListUsers(ctx context.Context, page, limit int) ([]models.User, int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	var users []models.User
	query := s.db.WithContext(ctx).Order("username")
	if limit > 0 {
		query = query.Offset((page - 1) * limit).Limit(limit)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, count, nil
}

// Viewer loads the per-request id sets for a user. An anonymous viewer
// (uuid.Nil) gets empty sets and every flag renders false.
func (s *UserService) Viewer(ctx context.Context, userID uuid.UUID) (*types.Viewer, error) {
	viewer := &types.Viewer{
		UserID:    userID,
		Follows:   map[uuid.UUID]bool{},
		Favorites: map[uuid.UUID]bool{},
		Carts:     map[uuid.UUID]bool{},
	}
	if userID == uuid.Nil {
		return viewer, nil
	}

	var followIDs []uuid.UUID
	if err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ?", userID).Pluck("author_id", &followIDs).Error; err != nil {
		return nil, err
	}
	for _, id := range followIDs {
		viewer.Follows[id] = true
	}

	var favoriteIDs []uuid.UUID
	if err := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ?", userID).Pluck("recipe_id", &favoriteIDs).Error; err != nil {
		return nil, err
	}
	for _, id := range favoriteIDs {
		viewer.Favorites[id] = true
	}

	var cartIDs []uuid.UUID
	if err := s.db.WithContext(ctx).Model(&models.ShoppingCart{}).
		Where("user_id = ?", userID).Pluck("recipe_id", &cartIDs).Error; err != nil {
		return nil, err
	}
	for _, id := range cartIDs {
		viewer.Carts[id] = true
	}
	return viewer, nil
}

// Follow subscribes userID to authorID. The insert is conditional on the
// composite uniqueness index, so a duplicate race resolves to exactly one row
// and the loser sees ErrAlreadyExists.
func (s *UserService) Follow(ctx context.Context, userID, authorID uuid.UUID) (*models.User, error) {
	if userID == authorID {
		return nil, ErrSelfFollow
	}
	author, err := s.GetUser(ctx, authorID)
	if err != nil {
		return nil, err
	}

	follow := models.Follow{UserID: userID, AuthorID: authorID}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&follow)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrAlreadyExists
	}
	return author, nil
}

// Unfollow removes the subscription; absent rows are a not-found error.
func (s *UserService) Unfollow(ctx context.Context, userID, authorID uuid.UUID) error {
	if _, err := s.GetUser(ctx, authorID); err != nil {
		return err
	}
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Subscriptions lists the authors userID follows, each with a recipe count
// and their recipes truncated to recipesLimit (0 means no truncation).
func (s *UserService) Subscriptions(ctx context.Context, userID uuid.UUID, recipesLimit int) ([]types.SubscriptionResponse, error) {
	var authors []models.User
	if err := s.db.WithContext(ctx).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID).
		Order("users.username").
		Find(&authors).Error; err != nil {
		return nil, err
	}

	out := make([]types.SubscriptionResponse, 0, len(authors))
	for i := range authors {
		sub, err := s.SubscriptionFor(ctx, &authors[i], recipesLimit)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, nil
}

// SubscriptionFor renders one followed author with their recipes and recipe
// count. is_subscribed is always true in this shape: it only ever renders
// authors the viewer follows.
func (s *UserService) SubscriptionFor(ctx context.Context, author *models.User, recipesLimit int) (types.SubscriptionResponse, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("author_id = ?", author.ID).Count(&count).Error; err != nil {
		return types.SubscriptionResponse{}, err
	}

	query := s.db.WithContext(ctx).
		Where("author_id = ?", author.ID).
		Order("created_at DESC")
	if recipesLimit > 0 {
		query = query.Limit(recipesLimit)
	}
	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return types.SubscriptionResponse{}, err
	}

	cards := make([]types.RecipeCard, 0, len(recipes))
	for j := range recipes {
		cards = append(cards, types.NewRecipeCard(&recipes[j]))
	}

	return types.SubscriptionResponse{
		UserResponse: types.UserResponse{
			ID:           author.ID,
			Email:        author.Email,
			Username:     author.Username,
			FirstName:    author.FirstName,
			LastName:     author.LastName,
			IsSubscribed: true,
		},
		Recipes:      cards,
		RecipesCount: count,
	}, nil
}
