package models

import "time"

// RefreshToken adalah token opaque yang dipersist per sesi login staff.
// Rotasi menghapus baris lama secara kondisional sehingga replay gagal.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"type:varchar(255);unique;not null" json:"token"`
	AccountID uint      `gorm:"index;not null" json:"account_id"`
	Account   Account   `gorm:"foreignKey:AccountID" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
