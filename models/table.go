package models

import "time"

const (
	TableAvailable = "Available"
	TableHidden    = "Hidden"
	TableReserved  = "Reserved"
)

type Table struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Number   int    `gorm:"unique;not null" json:"number"`
	Capacity int    `gorm:"not null" json:"capacity"`
	Status   string `gorm:"type:varchar(20);not null;default:'Available'" json:"status"`
	// Token akses meja; hanya satu yang hidup per meja, bisa dirotasi
	Token     string    `gorm:"type:varchar(255);unique;not null" json:"token"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
