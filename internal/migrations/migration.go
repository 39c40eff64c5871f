package migrations

import (
	"log"

	"auraweb/internal/models"
	"auraweb/internal/repository"
	"auraweb/internal/services"

	"gorm.io/gorm"
)

// RunMigrations rebuilds the schema from scratch and reseeds the admin
// account. Destructive; used by scripts/init-db, never by the server.
func RunMigrations(db *gorm.DB, adminUsername, adminPassword, adminEmail string) error {
	log.Println("Running database migrations...")

	log.Println("Dropping existing tables...")
	err := db.Migrator().DropTable(
		&models.User{},
		&models.Submission{},
		&models.PortfolioItem{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	log.Println("Creating tables...")
	err = db.AutoMigrate(
		&models.User{},
		&models.Submission{},
		&models.PortfolioItem{},
	)
	if err != nil {
		return err
	}

	userService := services.NewUserService(repository.NewUserRepository(db))
	if err := userService.EnsureAdminUser(adminUsername, adminPassword, adminEmail); err != nil {
		return err
	}

	log.Println("Migrations completed successfully")
	return nil
}
