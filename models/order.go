package models

import "time"

const (
	OrderPending    = "Pending"
	OrderProcessing = "Processing"
	OrderRejected   = "Rejected"
	OrderPaid       = "Paid"
)

// allowedTransitions memetakan status asal ke status tujuan yang sah.
// Rejected dan Paid adalah terminal.
var allowedTransitions = map[string][]string{
	OrderPending:    {OrderProcessing, OrderRejected},
	OrderProcessing: {OrderPaid, OrderRejected},
}

// CanTransition melaporkan apakah perpindahan from -> to diizinkan.
func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidOrderStatus melaporkan apakah s adalah salah satu status order.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderProcessing, OrderRejected, OrderPaid:
		return true
	}
	return false
}

type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// Nil untuk order yang dibuat staff tanpa guest
	GuestID        *uint        `gorm:"index" json:"guest_id,omitempty"`
	Guest          *Guest       `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	TableNumber    int          `gorm:"index;not null" json:"table_number"`
	DishSnapshotID uint         `gorm:"not null" json:"dish_snapshot_id"`
	DishSnapshot   DishSnapshot `gorm:"foreignKey:DishSnapshotID" json:"dish_snapshot"`
	Quantity       int          `gorm:"not null" json:"quantity"`
	// Employee yang menangani; diisi saat Pending -> Processing
	HandlerID *uint     `gorm:"index" json:"handler_id,omitempty"`
	Handler   *Account  `gorm:"foreignKey:HandlerID" json:"handler,omitempty"`
	Status    string    `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
