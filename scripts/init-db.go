package main

import (
	"fmt"
	"log"

	"canteen/internal/config"
	"canteen/internal/database"
	"canteen/internal/migrations"
	"canteen/internal/models"
)

// Destructive re-init: drops every table, recreates the schema, and seeds the
// default users, menu, and settings.
func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.User{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Settings{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Println("Database initialized.")
	fmt.Println("Default accounts:")
	fmt.Println("  admin@guc.edu / admin")
	fmt.Println("  kitchen@guc.edu / kitchen")
	fmt.Println("  student@guc.edu / student")
}
