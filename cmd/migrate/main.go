package main

import (
	"log"
	"os"

	"ai-poemreview-be/internal/model"
	"ai-poemreview-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions (Things GORM AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate for 8 Tables...")

	models := []interface{}{
		&model.Poem{},
		&model.GuideVersion{},
		&model.FeedbackSession{},
		&model.InlineComment{},
		&model.VoiceFeedbackSession{},
		&model.ConversationMessage{},
		&model.ExtractedFeedback{},
		&model.Revision{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Seed guide version 1 from the on-disk guide file if the table is empty
	log.Println("Step 3: Seeding initial guide version...")

	var count int64
	if err := db.Model(&model.GuideVersion{}).Count(&count).Error; err != nil {
		log.Fatalf("Error: Failed to count guide versions: %v", err)
	}
	if count == 0 {
		seedPath := os.Getenv("GUIDE_SEED_PATH")
		if seedPath == "" {
			seedPath = "poetry_guide.md"
		}
		content, err := os.ReadFile(seedPath)
		if err != nil {
			log.Printf("Warn: Could not read guide seed file %s: %v. Skipping seed.", seedPath, err)
		} else {
			summary := "Initial guide"
			seed := model.GuideVersion{
				Id:            uuid.New(),
				Content:       string(content),
				Version:       1,
				ChangeSummary: &summary,
			}
			if err := db.Create(&seed).Error; err != nil {
				log.Fatalf("Error: Failed to seed guide version: %v", err)
			}
			log.Println("Seeded guide version 1 from", seedPath)
		}
	} else {
		log.Printf("Guide versions already present (%d), skipping seed.", count)
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
