package main

import (
	"log"
	"os"

	"gasflow-be/internal/model"
	"gasflow-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("🚀 Seeding catalog data")
	seedProducts(db)
	color.Green("Done.")
}

func strPtr(s string) *string { return &s }

func seedProducts(db *gorm.DB) {
	products := []model.Product{
		{
			Name:        "LPG Cylinder 3kg",
			Description: "Subsidized 3kg cylinder for household cooking.",
			SizeKg:      3,
			Price:       25000,
			Stock:       120,
			ImageURL:    strPtr("/uploads/products/lpg-3kg.png"),
			IsActive:    true,
		},
		{
			Name:        "LPG Cylinder 5.5kg",
			Description: "Bright Gas 5.5kg, compact cylinder for small kitchens.",
			SizeKg:      5.5,
			Price:       115000,
			Stock:       80,
			ImageURL:    strPtr("/uploads/products/lpg-5.5kg.png"),
			IsActive:    true,
		},
		{
			Name:        "LPG Cylinder 12kg",
			Description: "Standard 12kg cylinder for family use.",
			SizeKg:      12,
			Price:       230000,
			Stock:       60,
			ImageURL:    strPtr("/uploads/products/lpg-12kg.png"),
			IsActive:    true,
		},
		{
			Name:        "LPG Cylinder 50kg",
			Description: "Commercial 50kg cylinder for restaurants and industry.",
			SizeKg:      50,
			Price:       950000,
			Stock:       25,
			ImageURL:    strPtr("/uploads/products/lpg-50kg.png"),
			IsActive:    true,
		},
	}

	for _, p := range products {
		var existing model.Product
		err := db.Where("name = ?", p.Name).First(&existing).Error
		if err == nil {
			color.Yellow("Skip (exists): %s", p.Name)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			color.Red("Lookup failed for %s: %v", p.Name, err)
			continue
		}
		if err := db.Create(&p).Error; err != nil {
			color.Red("Failed to seed %s: %v", p.Name, err)
			continue
		}
		color.Green("Seeded: %s", p.Name)
	}
}
