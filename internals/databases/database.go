package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"koranku_backend/internals/configs"
	accessModel "koranku_backend/internals/features/epapers/access/model"
	areaMapModel "koranku_backend/internals/features/epapers/areamaps/model"
	editionModel "koranku_backend/internals/features/epapers/editions/model"
	shareModel "koranku_backend/internals/features/epapers/shares/model"
	adModel "koranku_backend/internals/features/publishing/ads/model"
	categoryModel "koranku_backend/internals/features/publishing/categories/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connecting to PostgreSQL...")

	sslmode := configs.GetEnv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=koranku&options=-c statement_timeout=5000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // PgBouncer transaction pooling
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ DB connect failed: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
}

// AutoMigrate runs schema migration for every registered model.
// Guarded by env so production can rely on SQL migrations instead.
func AutoMigrate() {
	if configs.GetEnv("DB_AUTO_MIGRATE", "true") != "true" {
		log.Println("[INFO] DB_AUTO_MIGRATE disabled, skipping")
		return
	}

	err := DB.AutoMigrate(
		&editionModel.EditionModel{},
		&editionModel.EditionPageModel{},
		&editionModel.EditionCategoryModel{},
		&areaMapModel.AreaMapModel{},
		&shareModel.CroppedShareModel{},
		&accessModel.SettingModel{},
		&accessModel.SubscriptionPlanModel{},
		&accessModel.SubscriptionModel{},
		&adModel.AdvertisementModel{},
		&categoryModel.CategoryModel{},
	)
	if err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}
	log.Println("✅ AutoMigrate done.")
}
