package database

import (
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed mengisi database kosong dengan data awal: satu Owner, dua
// Employee, menu dasar, dan tiga meja dengan token yang dikenal.
// No-op kalau sudah ada akun.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Account{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	owner := models.Account{
		Name:     "Owner",
		Email:    "owner@example.com",
		Password: string(hashed),
		Role:     models.RoleOwner,
	}
	if err := db.Create(&owner).Error; err != nil {
		return err
	}

	employees := []models.Account{
		{Name: "Employee 1", Email: "employee1@example.com", Password: string(hashed), Role: models.RoleEmployee, OwnerID: &owner.ID},
		{Name: "Employee 2", Email: "employee2@example.com", Password: string(hashed), Role: models.RoleEmployee, OwnerID: &owner.ID},
	}
	if err := db.Create(&employees).Error; err != nil {
		return err
	}

	categories := []models.Category{
		{Name: "Rice", Description: "All rice-based dishes"},
		{Name: "Noodles", Description: "All noodle-based dishes"},
		{Name: "Drinks", Description: "Beverages and soft drinks"},
		{Name: "Desserts", Description: "Sweet treats and desserts"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	dishes := []models.Dish{
		{CategoryID: categories[0].ID, Name: "Broken Rice", Price: 45000, Description: "Traditional Vietnamese broken rice with grilled pork", Image: "broken-rice.jpg", Status: models.DishAvailable},
		{CategoryID: categories[0].ID, Name: "Chicken Rice", Price: 50000, Description: "Steamed chicken with fragrant rice", Image: "chicken-rice.jpg", Status: models.DishAvailable},
		{CategoryID: categories[1].ID, Name: "Pho", Price: 40000, Description: "Vietnamese noodle soup with beef", Image: "pho.jpg", Status: models.DishAvailable},
		{CategoryID: categories[2].ID, Name: "Iced Tea", Price: 10000, Description: "Refreshing iced tea", Image: "iced-tea.jpg", Status: models.DishAvailable},
		{CategoryID: categories[3].ID, Name: "Che", Price: 15000, Description: "Sweet Vietnamese dessert soup", Image: "che.jpg", Status: models.DishAvailable},
	}
	if err := db.Create(&dishes).Error; err != nil {
		return err
	}

	tables := []models.Table{
		{Number: 1, Capacity: 4, Status: models.TableAvailable, Token: "table1-token"},
		{Number: 2, Capacity: 6, Status: models.TableAvailable, Token: "table2-token"},
		{Number: 3, Capacity: 2, Status: models.TableAvailable, Token: "table3-token"},
	}
	if err := db.Create(&tables).Error; err != nil {
		return err
	}

	utils.InfoLogger.Println("Seed data created")
	return nil
}
