package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foodgram-app/backend/config"
	"github.com/foodgram-app/backend/internal/database"
	"github.com/foodgram-app/backend/internal/models"
)

type fixture struct {
	Tags []struct {
		Name  string `json:"name"`
		Color string `json:"color"`
		Slug  string `json:"slug"`
	} `json:"tags"`
	Ingredients []struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	} `json:"ingredients"`
}

// Loads the tag and ingredient catalog from a JSON fixture. Reruns are safe:
// rows that already exist are skipped on their unique keys.
func main() {
	path := flag.String("fixture", "data/catalog.json", "path to the catalog fixture")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to run migrations")
	}

	raw, err := os.ReadFile(*path)
	if err != nil {
		logrus.WithError(err).Fatal("failed to read fixture")
	}
	var fix fixture
	if err := json.Unmarshal(raw, &fix); err != nil {
		logrus.WithError(err).Fatal("failed to parse fixture")
	}

	if err := seed(db, &fix); err != nil {
		logrus.WithError(err).Fatal("seeding failed")
	}
	logrus.WithFields(logrus.Fields{
		"tags":        len(fix.Tags),
		"ingredients": len(fix.Ingredients),
	}).Info("catalog seeded")
}

func seed(db *gorm.DB, fix *fixture) error {
	for _, t := range fix.Tags {
		tag := models.Tag{Name: t.Name, Color: t.Color, Slug: t.Slug}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tag).Error; err != nil {
			return err
		}
	}
	for _, in := range fix.Ingredients {
		ingredient := models.Ingredient{Name: in.Name, MeasurementUnit: in.MeasurementUnit}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ingredient).Error; err != nil {
			return err
		}
	}
	return nil
}
