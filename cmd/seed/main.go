// Command seed creates the admin account, or promotes and re-keys it
// if it already exists. Safe to run repeatedly.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"studyshare/internal/config"
	"studyshare/internal/database"
	"studyshare/internal/domain/auth"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	username := getenv("ADMIN_USERNAME", "admin")
	password := getenv("ADMIN_PASSWORD", "admin123")
	name := getenv("ADMIN_NAME", "Administrator")

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hashing failed:", err)
	}

	ctx := context.Background()
	users := auth.NewRepository(db)

	existing, err := users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		if err := db.WithContext(ctx).Model(&auth.User{}).
			Where("id = ?", existing.ID).
			Updates(map[string]interface{}{
				"password_hash": string(hash),
				"is_admin":      true,
			}).Error; err != nil {
			log.Fatal("admin update failed:", err)
		}
		log.Printf("admin user %q updated", username)
	case errors.Is(err, auth.ErrUserNotFound):
		admin := &auth.User{
			Username:     username,
			Name:         name,
			PasswordHash: string(hash),
			IsAdmin:      true,
			CreatedAt:    time.Now(),
		}
		if err := users.Create(ctx, admin); err != nil {
			log.Fatal("admin create failed:", err)
		}
		log.Printf("admin user %q created", username)
	default:
		log.Fatal("admin lookup failed:", err)
	}
}

func getenv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
