package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/middlewares"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB     *gorm.DB
	Tokens *services.TokenService
}

func NewAuthController(db *gorm.DB, tokens *services.TokenService) *AuthController {
	return &AuthController{DB: db, Tokens: tokens}
}

// Login staff -> pasangan access + refresh token
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.ErrValidation(err.Error()))
		return
	}

	var account models.Account
	if err := ac.DB.Where("email = ?", req.Email).First(&account).Error; err != nil {
		utils.RespondError(c, utils.ErrUnauthenticated("invalid credentials"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		utils.RespondError(c, utils.ErrUnauthenticated("invalid credentials"))
		return
	}

	accessToken, refreshToken, err := ac.Tokens.IssueStaffSession(account)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.InfoLogger.Printf("Login successful: %s (role=%s)", account.Email, account.Role)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"account": gin.H{
			"id":    account.ID,
			"name":  account.Name,
			"email": account.Email,
			"role":  account.Role,
		},
	})
}

// RefreshToken menukar refresh token dengan pasangan baru; token lama
// hangus sekali pakai.
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.ErrValidation(err.Error()))
		return
	}

	accessToken, refreshToken, err := ac.Tokens.RotateRefreshToken(req.RefreshToken)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Token refreshed", gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Logout mencabut refresh token. Aman dipanggil berulang.
func (ac *AuthController) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.ErrValidation(err.Error()))
		return
	}

	if err := ac.Tokens.RevokeRefreshToken(req.RefreshToken); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

// GuestLogin menukar token meja + nama dengan sesi guest.
func (ac *AuthController) GuestLogin(c *gin.Context) {
	var req struct {
		TableNumber int    `json:"table_number" binding:"required"`
		TableToken  string `json:"table_token" binding:"required"`
		Name        string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.ErrValidation(err.Error()))
		return
	}

	token, guest, err := ac.Tokens.IssueGuestSession(req.TableNumber, req.TableToken, req.Name)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Guest session created", gin.H{
		"token": token,
		"guest": guest,
	})
}

// GetProfile mengembalikan profil sesi yang sedang login (staff atau guest).
func (ac *AuthController) GetProfile(c *gin.Context) {
	identity, ok := middlewares.GetIdentity(c)
	if !ok {
		utils.RespondError(c, utils.ErrUnauthenticated("login required"))
		return
	}

	if identity.IsGuest() {
		var guest models.Guest
		if err := ac.DB.First(&guest, identity.GuestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondError(c, utils.ErrNotFound("guest not found"))
				return
			}
			utils.RespondError(c, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Guest profile", guest)
		return
	}

	var account models.Account
	if err := ac.DB.First(&account, identity.AccountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, utils.ErrNotFound("account not found"))
			return
		}
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", gin.H{
		"id":    account.ID,
		"name":  account.Name,
		"email": account.Email,
		"role":  account.Role,
	})
}
