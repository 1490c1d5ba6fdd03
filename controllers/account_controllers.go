package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/middlewares"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AccountController struct {
	DB *gorm.DB
}

func NewAccountController(db *gorm.DB) *AccountController {
	return &AccountController{DB: db}
}

// CreateEmployee -> Owner membuat akun Employee yang terikat ke dirinya.
func (ac *AccountController) CreateEmployee(c *gin.Context) {
	identity, _ := middlewares.GetIdentity(c)

	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.ErrValidation(err.Error()))
		return
	}

	var count int64
	ac.DB.Model(&models.Account{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		utils.RespondError(c, utils.ErrUniquenessConflict("email is already registered"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	ownerID := identity.AccountID
	account := models.Account{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     models.RoleEmployee,
		OwnerID:  &ownerID,
	}
	if err := ac.DB.Create(&account).Error; err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.InfoLogger.Printf("New employee registered: %s (owner=%d)", account.Email, ownerID)
	utils.RespondJSON(c, http.StatusCreated, "Employee created", gin.H{
		"id":    account.ID,
		"name":  account.Name,
		"email": account.Email,
		"role":  account.Role,
	})
}

// GetAllAccounts -> Owner melihat seluruh akun.
func (ac *AccountController) GetAllAccounts(c *gin.Context) {
	var accounts []models.Account
	if err := ac.DB.Find(&accounts).Error; err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of accounts", accounts)
}
