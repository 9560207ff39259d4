package main

import (
	"log"
	"time"

	"homeservices/internal/config"
	"homeservices/internal/database"
	"homeservices/internal/domain"
)

// auth_cleanup clears verification codes that can no longer be used and prunes old read notifications.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL, nil)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	now := time.Now().UTC()

	res1 := db.Model(&domain.User{}).
		Where("verification_expires IS NOT NULL AND (verification_expires < ? OR is_verified = ?)", now, true).
		Updates(map[string]any{
			"verification_code_hash": "",
			"verification_expires":   nil,
			"verification_attempts":  0,
		})
	if res1.Error != nil {
		log.Fatalf("cleanup verification codes failed: %v", res1.Error)
	}

	res2 := db.Where("is_read = ? AND created_at < ?", true, now.AddDate(0, 0, -30)).
		Delete(&domain.AppNotification{})
	if res2.Error != nil {
		log.Fatalf("cleanup notifications failed: %v", res2.Error)
	}

	log.Printf("auth cleanup completed: verification_codes=%d notifications=%d", res1.RowsAffected, res2.RowsAffected)
}
