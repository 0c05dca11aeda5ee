package config

import (
	"log"
	"os"

	"menucraft-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret returns the token signing key. Resolved on each call so a
// secret loaded from .env in main() is honored.
func JWTSecret() []byte {
	return []byte(getEnv("JWT_SECRET", "menucraft_super_secret_2024"))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// UploadDir is where logo/category/item images are stored and served from.
func UploadDir() string {
	return getEnv("UPLOAD_DIR", "./uploads")
}

func InitDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(getEnv("DB_SOURCE", "menucraft.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Menu{},
		&models.Category{},
		&models.Item{},
		&models.Template{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("✅ Database connected and migrated successfully")
}
