package main

import (
	"context"
	"log"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/config"
	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	"github.com/Flexasaurusrex/art-claps-sub000/internal/server"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/database"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	redisClient := connectRedis(cfg.RedisURL)

	srv := server.NewServer(cfg, db, redisClient)

	log.Printf("art claps listening on :%s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Activity{},
		&entity.ArtistConnection{},
		&entity.Follow{},
		&entity.ReferralCode{},
		&entity.Notification{},
	)
}

// connectRedis returns nil when Redis is not configured or unreachable; the
// services treat a nil client as "run without the cache".
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
