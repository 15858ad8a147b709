package database

import (
	"gorm.io/gorm"

	"github.com/foodgram-app/backend/internal/models"
)

// Migrate brings the schema up to date. GORM auto-migration is sufficient
// here: the schema is a handful of tables with composite unique indexes and
// no data-rewriting migrations.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.IngredientRecipe{},
		&models.Favorite{},
		&models.ShoppingCart{},
	)
}
