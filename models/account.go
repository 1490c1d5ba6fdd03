package models

import "time"

const (
	RoleOwner    = "Owner"
	RoleEmployee = "Employee"
)

type Account struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Email    string `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Role     string `gorm:"type:varchar(20);not null" json:"role"`
	// Employee terikat ke satu Owner; Owner sendiri nil
	OwnerID   *uint     `gorm:"index" json:"owner_id,omitempty"`
	Owner     *Account  `gorm:"foreignKey:OwnerID" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
