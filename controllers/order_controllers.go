package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/middlewares"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// CreateOrder -> staff atau guest membuat order. Untuk guest, meja dan
// guest id diambil dari sesinya sendiri, bukan dari body.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	identity, _ := middlewares.GetIdentity(c)

	var req struct {
		TableNumber int   `json:"table_number"`
		DishID      uint  `json:"dish_id" binding:"required"`
		Quantity    int   `json:"quantity" binding:"required"`
		GuestID     *uint `json:"guest_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.ErrValidation(err.Error()))
		return
	}

	if identity.IsStaff() && req.TableNumber == 0 {
		utils.RespondError(c, utils.ErrValidation("table_number is required"))
		return
	}

	order, err := oc.Orders.CreateOrder(identity, req.TableNumber, req.DishID, req.Quantity, req.GuestID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// UpdateOrderStatus -> transisi status order (staff bebas di edge yang
// sah, guest hanya membatalkan order miliknya).
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	identity, _ := middlewares.GetIdentity(c)

	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, utils.ErrValidation("order id must be an integer"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.ErrValidation(err.Error()))
		return
	}

	order, err := oc.Orders.UpdateStatus(identity, uint(orderID), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// GetAllOrders -> staff melihat semua order, opsional filter per meja.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var tableNumber *int
	if raw := c.Query("table_number"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondError(c, utils.ErrValidation("table_number must be an integer"))
			return
		}
		tableNumber = &n
	}

	orders, err := oc.Orders.ListOrders(tableNumber)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail satu order (staff).
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, utils.ErrValidation("order id must be an integer"))
		return
	}

	var order models.Order
	err = oc.Orders.DB.Preload("DishSnapshot").Preload("Guest").Preload("Handler").
		First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, utils.ErrNotFound("order not found"))
			return
		}
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetGuestOrders -> guest melihat order miliknya sendiri.
func (oc *OrderController) GetGuestOrders(c *gin.Context) {
	identity, _ := middlewares.GetIdentity(c)

	orders, err := oc.Orders.ListGuestOrders(identity.GuestID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Guest orders", orders)
}
