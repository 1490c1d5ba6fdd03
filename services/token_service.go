package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

// TokenService menerbitkan dan memverifikasi dua jenis token: pasangan
// access/refresh untuk staff dan token sesi untuk guest meja.
type TokenService struct {
	DB         *gorm.DB
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	GuestTTL   time.Duration
}

func NewTokenService(db *gorm.DB) *TokenService {
	return &TokenService{
		DB:         db,
		AccessTTL:  1 * time.Hour,
		RefreshTTL: 7 * 24 * time.Hour,
		GuestTTL:   12 * time.Hour,
	}
}

// IssueStaffSession membuat access token self-contained (account id +
// role) plus refresh token opaque yang dipersist.
func (ts *TokenService) IssueStaffSession(account models.Account) (accessToken, refreshToken string, err error) {
	accessToken, err = utils.GenerateStaffToken(account.ID, account.Role, ts.AccessTTL)
	if err != nil {
		return "", "", err
	}

	refreshToken = uuid.NewString()
	row := models.RefreshToken{
		Token:     refreshToken,
		AccountID: account.ID,
		ExpiresAt: time.Now().Add(ts.RefreshTTL),
	}
	if err := ts.DB.Create(&row).Error; err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// RotateRefreshToken menukar refresh token lama dengan pasangan baru.
// Penghapusan token lama dikondisikan pada baris yang masih ada, jadi
// dari dua refresh paralel dengan token yang sama hanya satu yang menang;
// replay token curian setelah sekali pakai gagal dengan InvalidTokenError.
func (ts *TokenService) RotateRefreshToken(oldToken string) (accessToken, refreshToken string, err error) {
	var row models.RefreshToken
	if err := ts.DB.Preload("Account").Where("token = ?", oldToken).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", utils.ErrInvalidToken("refresh token is unknown or already used")
		}
		return "", "", err
	}

	if time.Now().After(row.ExpiresAt) {
		ts.DB.Where("token = ?", oldToken).Delete(&models.RefreshToken{})
		return "", "", utils.ErrInvalidToken("refresh token has expired")
	}

	// Compare-and-delete: pemenang balapan adalah yang menghapus barisnya
	res := ts.DB.Where("token = ?", oldToken).Delete(&models.RefreshToken{})
	if res.Error != nil {
		return "", "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", "", utils.ErrInvalidToken("refresh token is unknown or already used")
	}

	return ts.IssueStaffSession(row.Account)
}

// RevokeRefreshToken mencabut refresh token saat logout. Idempotent.
func (ts *TokenService) RevokeRefreshToken(token string) error {
	return ts.DB.Where("token = ?", token).Delete(&models.RefreshToken{}).Error
}

// IssueGuestSession menukar token meja dengan sesi guest baru.
func (ts *TokenService) IssueGuestSession(tableNumber int, tableToken, guestName string) (string, models.Guest, error) {
	guestName = strings.TrimSpace(guestName)
	if guestName == "" {
		return "", models.Guest{}, utils.ErrValidation("guest name is required")
	}

	var table models.Table
	if err := ts.DB.Where("number = ?", tableNumber).First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.Guest{}, utils.ErrInvalidTableToken("table token does not match")
		}
		return "", models.Guest{}, err
	}

	if table.Token != tableToken {
		return "", models.Guest{}, utils.ErrInvalidTableToken("table token does not match")
	}
	if table.Status != models.TableAvailable {
		return "", models.Guest{}, utils.ErrInvalidTableToken("table is not available")
	}

	guest := models.Guest{
		Name:        guestName,
		TableNumber: table.Number,
	}
	if err := ts.DB.Create(&guest).Error; err != nil {
		return "", models.Guest{}, err
	}

	token, err := utils.GenerateGuestToken(guest.ID, guest.TableNumber, ts.GuestTTL)
	if err != nil {
		return "", models.Guest{}, err
	}

	utils.InfoLogger.Printf("Guest %q (id=%d) joined table %d", guest.Name, guest.ID, guest.TableNumber)
	return token, guest, nil
}
