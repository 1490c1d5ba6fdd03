package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yeremiapane/restaurant-pos/hub"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

// OrderService memegang siklus hidup order: pembuatan dengan snapshot
// harga beku dan transisi status lewat conditional update.
type OrderService struct {
	DB  *gorm.DB
	Hub *hub.Hub
}

func NewOrderService(db *gorm.DB, h *hub.Hub) *OrderService {
	return &OrderService{DB: db, Hub: h}
}

// CreateOrder membekukan harga/deskripsi dish saat ini ke DishSnapshot
// baru lalu membuat order Pending. Guest hanya bisa memesan untuk mejanya
// sendiri; order buatan staff langsung tercatat handler-nya.
func (os *OrderService) CreateOrder(actor utils.Identity, tableNumber int, dishID uint, quantity int, guestID *uint) (models.Order, error) {
	if quantity < 1 {
		return models.Order{}, utils.ErrValidation("quantity must be a positive integer")
	}

	if actor.IsGuest() {
		tableNumber = actor.TableNumber
		id := actor.GuestID
		guestID = &id
	}

	var table models.Table
	if err := os.DB.Where("number = ?", tableNumber).First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, utils.ErrNotFound(fmt.Sprintf("table %d not found", tableNumber))
		}
		return models.Order{}, err
	}

	var dish models.Dish
	if err := os.DB.First(&dish, dishID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, utils.ErrNotFound("dish not found")
		}
		return models.Order{}, err
	}
	if dish.Status != models.DishAvailable {
		return models.Order{}, utils.ErrDishUnavailable(fmt.Sprintf("dish %q is not available", dish.Name))
	}

	if guestID != nil {
		var guest models.Guest
		if err := os.DB.First(&guest, *guestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Order{}, utils.ErrNotFound("guest not found")
			}
			return models.Order{}, err
		}
		if guest.TableNumber != tableNumber {
			return models.Order{}, utils.ErrForbidden("guest does not belong to this table")
		}
	}

	var order models.Order
	err := os.DB.Transaction(func(tx *gorm.DB) error {
		snapshot := models.DishSnapshot{
			Name:        dish.Name,
			Price:       dish.Price,
			Description: dish.Description,
			Image:       dish.Image,
			Status:      dish.Status,
			DishID:      &dish.ID,
		}
		if err := tx.Create(&snapshot).Error; err != nil {
			return err
		}

		order = models.Order{
			GuestID:        guestID,
			TableNumber:    tableNumber,
			DishSnapshotID: snapshot.ID,
			Quantity:       quantity,
			Status:         models.OrderPending,
		}
		if actor.IsStaff() {
			id := actor.AccountID
			order.HandlerID = &id
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return models.Order{}, err
	}

	if err := os.DB.Preload("DishSnapshot").Preload("Guest").Preload("Handler").First(&order, order.ID).Error; err != nil {
		return models.Order{}, err
	}

	utils.InfoLogger.Printf("Order #%d created at table %d (dish=%q qty=%d)",
		order.ID, order.TableNumber, dish.Name, order.Quantity)

	// Emit setelah commit; publish tidak pernah memblokir pemanggil
	os.Hub.PublishOrderEvent(hub.OrderEvent{
		OrderID:     order.ID,
		TableNumber: order.TableNumber,
		GuestID:     order.GuestID,
		HandlerID:   order.HandlerID,
		NewStatus:   order.Status,
	})
	return order, nil
}

// UpdateStatus menjalankan transisi status order. Penulisan dikondisikan
// pada status lama yang masih sama (optimistic concurrency): dari dua
// transisi paralel hanya satu yang menang, yang kalah menerima
// ConflictError dan state terminal tidak pernah tertimpa diam-diam.
func (os *OrderService) UpdateStatus(actor utils.Identity, orderID uint, newStatus string) (models.Order, error) {
	if !models.ValidOrderStatus(newStatus) {
		return models.Order{}, utils.ErrValidation(fmt.Sprintf("unknown order status %q", newStatus))
	}

	var order models.Order
	if err := os.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, utils.ErrNotFound("order not found")
		}
		return models.Order{}, err
	}

	// Guest hanya boleh membatalkan (Pending -> Rejected) order miliknya
	// sendiri di mejanya sendiri, tidak pernah memajukan status.
	if actor.IsGuest() {
		if newStatus != models.OrderRejected {
			return models.Order{}, utils.ErrForbidden("guests may only cancel their own order")
		}
		if order.GuestID == nil || *order.GuestID != actor.GuestID || order.TableNumber != actor.TableNumber {
			return models.Order{}, utils.ErrForbidden("order does not belong to this guest")
		}
	}

	expected := order.Status
	if !models.CanTransition(expected, newStatus) {
		return models.Order{}, utils.ErrInvalidTransition(
			fmt.Sprintf("cannot transition order from %s to %s", expected, newStatus))
	}

	var handlerID *uint
	// Staff yang memulai pengerjaan tercatat sebagai handler
	if actor.IsStaff() && expected == models.OrderPending && newStatus == models.OrderProcessing {
		id := actor.AccountID
		handlerID = &id
	}

	if err := os.applyTransition(orderID, expected, newStatus, handlerID); err != nil {
		return models.Order{}, err
	}

	if err := os.DB.Preload("DishSnapshot").Preload("Guest").Preload("Handler").First(&order, orderID).Error; err != nil {
		return models.Order{}, err
	}

	utils.InfoLogger.Printf("Order #%d: %s -> %s", order.ID, expected, order.Status)

	os.Hub.PublishOrderEvent(hub.OrderEvent{
		OrderID:     order.ID,
		TableNumber: order.TableNumber,
		GuestID:     order.GuestID,
		HandlerID:   order.HandlerID,
		OldStatus:   expected,
		NewStatus:   order.Status,
	})
	return order, nil
}

// applyTransition adalah conditional update inti: baris hanya berubah
// kalau statusnya masih sama dengan expected. Dari dua penulis paralel
// dengan expected yang sama, yang kalah mendapat ConflictError dan tidak
// menimpa apa pun.
func (os *OrderService) applyTransition(orderID uint, expected, newStatus string, handlerID *uint) error {
	updates := map[string]interface{}{
		"status":     newStatus,
		"updated_at": time.Now(),
	}
	if handlerID != nil {
		updates["handler_id"] = *handlerID
	}

	res := os.DB.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, expected).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var current models.Order
		if err := os.DB.First(&current, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrNotFound("order not found")
			}
			return err
		}
		return utils.ErrConflict(
			fmt.Sprintf("order status changed concurrently (now %s), refetch and retry", current.Status))
	}
	return nil
}

// ListOrders untuk staff, opsional difilter per meja.
func (os *OrderService) ListOrders(tableNumber *int) ([]models.Order, error) {
	q := os.DB.Preload("DishSnapshot").Preload("Guest").Preload("Handler").Order("created_at desc")
	if tableNumber != nil {
		q = q.Where("table_number = ?", *tableNumber)
	}
	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ListGuestOrders mengembalikan order milik satu guest.
func (os *OrderService) ListGuestOrders(guestID uint) ([]models.Order, error) {
	var orders []models.Order
	err := os.DB.Preload("DishSnapshot").
		Where("guest_id = ?", guestID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
