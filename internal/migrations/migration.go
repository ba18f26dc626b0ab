package migrations

import (
	"errors"
	"log"
	"time"

	"canteen/internal/models"
	"canteen/internal/redis"
	"canteen/internal/repository"
	"canteen/internal/services"

	"gorm.io/gorm"
)

// noSessions satisfies the session store for seeding, where nobody logs in.
type noSessions struct{}

func (noSessions) SetSession(string, *redis.SessionData, time.Duration) error { return nil }
func (noSessions) GetSession(string) (*redis.SessionData, error) {
	return nil, errors.New("no sessions during seeding")
}
func (noSessions) DeleteSession(string) error { return nil }

// RunMigrations creates the schema and seeds default data on first run.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Settings{},
	)
	if err != nil {
		return err
	}

	if err := createDefaultData(db); err != nil {
		log.Printf("Warning: Failed to create default data: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

// createDefaultData creates the default accounts, starter menu, and settings.
func createDefaultData(db *gorm.DB) error {
	log.Println("Creating default data...")

	userRepo := repository.NewUserRepository(db)
	userService := services.NewUserService(userRepo, noSessions{}, 0)

	// Check if admin already exists
	if existing, err := userRepo.GetByEmail("admin@guc.edu"); err == nil && existing != nil {
		log.Println("Default data already present")
		return nil
	}

	log.Println("Creating default users...")
	defaultUsers := []struct {
		email, password, role, name, studentID string
	}{
		{"admin@guc.edu", "admin", string(models.RoleAdmin), "Admin User", ""},
		{"kitchen@guc.edu", "kitchen", string(models.RoleKitchen), "Kitchen Staff 1", ""},
		{"student@guc.edu", "student", string(models.RoleStudent), "Test Student", "201-15-12345"},
	}
	for _, u := range defaultUsers {
		if _, err := userService.Register(u.email, u.password, u.role, u.name, u.studentID); err != nil {
			log.Printf("Warning: Failed to create user %s: %v", u.email, err)
		}
	}

	log.Println("Creating starter menu...")
	menuRepo := repository.NewMenuRepository(db)
	starterMenu := []models.MenuItem{
		{Name: "Chicken Biryani", Description: "Fragrant rice with spiced chicken", Price: 120, Category: string(models.CategoryMainCourse), StockQuantity: 40, IsSpecial: true, DiscountPercent: 10},
		{Name: "Beef Khichuri", Description: "Comfort rice and lentils with beef", Price: 100, Category: string(models.CategoryMainCourse), StockQuantity: 30},
		{Name: "Vegetable Curry with Rice", Description: "Seasonal vegetables in light curry", Price: 60, Category: string(models.CategoryMainCourse), StockQuantity: 50},
		{Name: "Singara", Description: "Crispy pastry with potato filling", Price: 10, Category: string(models.CategorySnacks), StockQuantity: 100},
		{Name: "Chicken Roll", Description: "Paratha roll with grilled chicken", Price: 40, Category: string(models.CategorySnacks), StockQuantity: 60},
		{Name: "Firni", Description: "Chilled rice pudding with cardamom", Price: 30, Category: string(models.CategoryDessert), StockQuantity: 25},
		{Name: "Mishti Doi", Description: "Sweetened yogurt", Price: 25, Category: string(models.CategoryDessert), StockQuantity: 35},
		{Name: "Milk Tea", Description: "Classic canteen cha", Price: 10, Category: string(models.CategoryDrinks), StockQuantity: 200},
		{Name: "Fresh Lime Soda", Description: "Sparkling lime cooler", Price: 25, Category: string(models.CategoryDrinks), StockQuantity: 80, IsSpecial: true, DiscountPercent: 20},
	}
	for i := range starterMenu {
		if err := menuRepo.Create(&starterMenu[i]); err != nil {
			log.Printf("Warning: Failed to create menu item %s: %v", starterMenu[i].Name, err)
		}
	}

	settingsRepo := repository.NewSettingsRepository(db)
	if err := settingsRepo.Create(&models.Settings{CanteenName: "Green University Canteen"}); err != nil {
		log.Printf("Warning: Failed to create settings: %v", err)
	}

	log.Println("Default data created successfully!")
	return nil
}
