package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
	"github.com/stepup-fit/stepup-server/internal/config"
	"github.com/stepup-fit/stepup-server/internal/model"
	"github.com/stepup-fit/stepup-server/internal/server"
	"github.com/stepup-fit/stepup-server/pkg/database"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db := database.Connect()
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := seedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	redisClient := connectRedis(cfg.RedisURL)

	srv := server.NewServer(db, redisClient)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// connectRedis returns nil when redis is not configured or unreachable;
// the server degrades to database-only behavior in that case.
func connectRedis(redisURL string) *redis.Client {
	if redisURL == "" {
		log.Println("REDIS_URL not set, running without redis")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("invalid REDIS_URL, running without redis: %v", err)
		return nil
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unreachable, running without redis: %v", err)
		return nil
	}

	return client
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.WorkoutLog{},
		&model.WorkoutVideo{},
		&model.BoardPost{},
		&model.BoardComment{},
		&model.StepLog{},
		&model.Notification{},
		&model.Payment{},
	)
}

func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", "admin@stepup.fit").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := model.User{
		Email:        "admin@stepup.fit",
		PasswordHash: string(hashedPasswordBytes),
		Nickname:     "admin",
		Role:         model.RoleAdmin,
		Plan:         model.PlanPremium,
	}
	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	adminGoal := "keep the lights on"
	adminProfile := model.Profile{
		UserID: adminUser.ID,
		Goal:   &adminGoal,
	}
	if err := db.Create(&adminProfile).Error; err != nil {
		return err
	}

	log.Println("Admin user seeded (admin@stepup.fit / admin123)")
	return nil
}
