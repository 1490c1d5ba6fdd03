package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

type DishController struct {
	DB *gorm.DB
}

func NewDishController(db *gorm.DB) *DishController {
	return &DishController{DB: db}
}

func validDishStatus(s string) bool {
	return s == models.DishAvailable || s == models.DishUnavailable
}

func (dc *DishController) GetAllDishes(c *gin.Context) {
	q := dc.DB.Order("name asc")
	if cat := c.Query("category_id"); cat != "" {
		q = q.Where("category_id = ?", cat)
	}

	var dishes []models.Dish
	if err := q.Find(&dishes).Error; err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of dishes", dishes)
}

func (dc *DishController) GetDishByID(c *gin.Context) {
	dish, err := dc.findByIDParam(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish detail", dish)
}

func (dc *DishController) CreateDish(c *gin.Context) {
	var req struct {
		CategoryID  uint    `json:"category_id" binding:"required"`
		Name        string  `json:"name" binding:"required"`
		Price       float64 `json:"price" binding:"required,gt=0"`
		Description string  `json:"description"`
		Image       string  `json:"image"`
		Status      string  `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.ErrValidation(err.Error()))
		return
	}

	status := models.DishAvailable
	if req.Status != "" {
		if !validDishStatus(req.Status) {
			utils.RespondError(c, utils.ErrValidation("unknown dish status"))
			return
		}
		status = req.Status
	}

	var category models.Category
	if err := dc.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.RespondError(c, utils.ErrNotFound("category not found"))
		return
	}

	dish := models.Dish{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
		Status:      status,
	}
	if err := dc.DB.Create(&dish).Error; err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.InfoLogger.Printf("New dish created: %s (price=%.2f)", dish.Name, dish.Price)
	utils.RespondJSON(c, http.StatusCreated, "Dish created", dish)
}

// UpdateDish mengubah dish hidup; order lama tidak terpengaruh karena
// memegang DishSnapshot sendiri.
func (dc *DishController) UpdateDish(c *gin.Context) {
	dish, err := dc.findByIDParam(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Price       *float64 `json:"price"`
		Description *string  `json:"description"`
		Image       *string  `json:"image"`
		Status      *string  `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.ErrValidation(err.Error()))
		return
	}

	if req.Name != nil {
		dish.Name = *req.Name
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			utils.RespondError(c, utils.ErrValidation("price must be positive"))
			return
		}
		dish.Price = *req.Price
	}
	if req.Description != nil {
		dish.Description = *req.Description
	}
	if req.Image != nil {
		dish.Image = *req.Image
	}
	if req.Status != nil {
		if !validDishStatus(*req.Status) {
			utils.RespondError(c, utils.ErrValidation("unknown dish status"))
			return
		}
		dish.Status = *req.Status
	}

	if err := dc.DB.Save(&dish).Error; err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish updated", dish)
}

func (dc *DishController) DeleteDish(c *gin.Context) {
	dish, err := dc.findByIDParam(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := dc.DB.Delete(&dish).Error; err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish deleted", gin.H{"id": dish.ID})
}

func (dc *DishController) findByIDParam(c *gin.Context) (models.Dish, error) {
	id, err := strconv.Atoi(c.Param("dish_id"))
	if err != nil {
		return models.Dish{}, utils.ErrValidation("dish id must be an integer")
	}

	var dish models.Dish
	if err := dc.DB.First(&dish, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Dish{}, utils.ErrNotFound("dish not found")
		}
		return models.Dish{}, err
	}
	return dish, nil
}
