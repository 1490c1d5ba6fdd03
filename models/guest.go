package models

import "time"

// Guest adalah sesi makan anonim yang terikat ke satu meja.
// Tidak dihapus saat meja dibersihkan, hanya menjadi inert.
type Guest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	TableNumber int       `gorm:"index;not null" json:"table_number"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
