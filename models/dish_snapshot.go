package models

import "time"

// DishSnapshot membekukan harga/deskripsi dish pada saat order dibuat.
// Dibuat sekali, tidak pernah di-update; perubahan harga dish tidak
// berpengaruh ke order yang sudah ada.
type DishSnapshot struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string  `gorm:"type:text" json:"description"`
	Image       string  `gorm:"type:varchar(255)" json:"image"`
	Status      string  `gorm:"type:varchar(20);not null" json:"status"`
	// Referensi balik ke dish asal, hanya untuk analitik
	DishID    *uint     `gorm:"index" json:"dish_id,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
