// Command seed resets the database and fills it with demo users and a month
// of randomized feature clicks. Everything it drops is recreated, so never
// point it at a live database.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"database/sql"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/selfviz/analytics-service/internal/auth"
	"github.com/selfviz/analytics-service/internal/config"
	"github.com/selfviz/analytics-service/internal/models"
	"github.com/selfviz/analytics-service/internal/repository"
)

var usernames = []string{
	"alice_smith", "bob_jones", "charlie_brown", "diana_prince", "eve_adams",
	"frank_miller", "grace_lee", "henry_ford", "iris_west", "jack_ryan",
	"kate_bishop", "leo_king", "maya_lopez", "noah_patel", "olivia_chen",
	"peter_parker", "quinn_taylor", "rose_wilson", "sam_fisher", "tina_turner",
}

var featureNames = []string{
	"date_filter", "age_filter", "gender_filter", "bar_chart_click",
	"line_chart_click", "export_data", "refresh_button",
}

var genders = []string{"male", "female", "other"}

func main() {
	logger := logrus.New()

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	repo := repository.NewRepository(db)

	if err := repo.Reset(ctx); err != nil {
		logger.Fatalf("Failed to reset database: %v", err)
	}
	if err := repo.Migrate(ctx); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Tables recreated")

	// All demo accounts share one password; hashing is deliberately slow, so
	// do it once.
	hash, err := auth.HashPassword("password123")
	if err != nil {
		logger.Fatalf("Failed to hash demo password: %v", err)
	}

	now := time.Now().UTC()
	totalClicks := 0

	for _, username := range usernames {
		user := &models.User{
			ID:           uuid.NewString(),
			Username:     username,
			Email:        fmt.Sprintf("%s@example.com", username),
			PasswordHash: hash,
			Age:          13 + rand.Intn(58),
			Gender:       genders[rand.Intn(len(genders))],
		}
		if err := repo.CreateUser(ctx, user); err != nil {
			logger.Fatalf("Failed to create user %s: %v", username, err)
		}

		for i := 0; i < 5+rand.Intn(26); i++ {
			click := &models.FeatureClick{
				ID:          uuid.NewString(),
				UserID:      user.ID,
				FeatureName: featureNames[rand.Intn(len(featureNames))],
				Timestamp:   now.Add(-time.Duration(rand.Intn(30*24*60)) * time.Minute),
			}
			if err := repo.CreateClickAt(ctx, click); err != nil {
				logger.Fatalf("Failed to create click: %v", err)
			}
			totalClicks++
		}
	}

	logger.Infof("Seeded %d users and %d clicks", len(usernames), totalClicks)
}
