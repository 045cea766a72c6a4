package main

import (
	"log"

	"gorm.io/gorm"

	"github.com/marco-valdez/la-comanda-api/models"
	"github.com/marco-valdez/la-comanda-api/services"
)

// seedInitialData creates a starter menu and an admin account when the
// respective tables are empty. Safe to re-run.
func seedInitialData(db *gorm.DB) error {
	var menuCount int64
	if err := db.Model(&models.MenuItem{}).Count(&menuCount).Error; err != nil {
		return err
	}

	if menuCount == 0 {
		initialMenu := []models.MenuItem{
			{Name: "Hamburguesa Clásica", Price: 8500, Category: "Principal", Available: true},
			{Name: "Pizza Margherita", Price: 12000, Category: "Principal", Available: true},
			{Name: "Ensalada César", Price: 7000, Category: "Ensalada", Available: true},
			{Name: "Papas Fritas", Price: 3500, Category: "Acompañamiento", Available: true},
			{Name: "Gaseosa", Price: 2500, Category: "Bebida", Available: true},
			{Name: "Agua", Price: 1500, Category: "Bebida", Available: true},
		}
		if err := db.Create(&initialMenu).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d menu items", len(initialMenu))
	}

	var staffCount int64
	if err := db.Model(&models.Staff{}).Count(&staffCount).Error; err != nil {
		return err
	}

	if staffCount == 0 {
		hash, err := services.HashPassword("change-me-now")
		if err != nil {
			return err
		}
		admin := models.Staff{
			Username:     "admin",
			Email:        "admin@lacomanda.local",
			PasswordHash: hash,
			DisplayName:  "Administrador",
			Role:         models.RoleAdmin,
			Active:       true,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		log.Println("Seeded admin account (username: admin) - change the password immediately")
	}

	return nil
}
