package database

import (
	"log"
	"time"

	"github.com/assoclub/club-api/internal/config"
	"github.com/assoclub/club-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto Migrate
	err = db.AutoMigrate(
		&models.Member{},
		&models.Event{},
		&models.Participation{},
		&models.Club{},
		&models.APIKey{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	if err := Seed(db, cfg); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	return db
}

// Seed guarantees the default admin account and the singleton club row.
// It only inserts when the rows are missing, so restarts are no-ops.
func Seed(db *gorm.DB, cfg *config.Config) error {
	var admins int64
	if err := db.Model(&models.Member{}).Where("role = ?", models.RoleAdmin).Count(&admins).Error; err != nil {
		return err
	}
	if admins == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := models.Member{
			Nom:             "Admin",
			Prenom:          "Super",
			Email:           cfg.AdminEmail,
			Password:        string(hash),
			Role:            models.RoleAdmin,
			DateInscription: time.Now().Format(models.DateFormat),
			Active:          true,
			Photo:           models.DefaultPhoto,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
	}

	var clubs int64
	if err := db.Model(&models.Club{}).Count(&clubs).Error; err != nil {
		return err
	}
	if clubs == 0 {
		if err := db.Create(&models.Club{Nom: cfg.ClubName}).Error; err != nil {
			return err
		}
	}

	return nil
}
