package main

import (
	"github.com/sirupsen/logrus"

	"github.com/foodgram-app/backend/config"
	"github.com/foodgram-app/backend/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("migration failed")
	}
	logrus.Info("migrations applied")
}
