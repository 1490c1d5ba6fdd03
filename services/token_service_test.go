package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

func TestIssueAndVerifyStaffSession(t *testing.T) {
	db := setupServiceTestDB(t)
	ts := NewTokenService(db)

	var account models.Account
	require.NoError(t, db.Where("email = ?", "employee1@example.com").First(&account).Error)

	access, refresh, err := ts.IssueStaffSession(account)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	identity, err := utils.ParseToken(access)
	require.NoError(t, err)
	assert.True(t, identity.IsStaff())
	assert.Equal(t, account.ID, identity.AccountID)
	assert.Equal(t, models.RoleEmployee, identity.Role)

	// Refresh token dipersist, terikat ke akun
	var row models.RefreshToken
	require.NoError(t, db.Where("token = ?", refresh).First(&row).Error)
	assert.Equal(t, account.ID, row.AccountID)
}

func TestRotateRefreshTokenReplayFails(t *testing.T) {
	db := setupServiceTestDB(t)
	ts := NewTokenService(db)

	var account models.Account
	require.NoError(t, db.Where("email = ?", "employee1@example.com").First(&account).Error)

	_, refresh, err := ts.IssueStaffSession(account)
	require.NoError(t, err)

	// Rotasi pertama berhasil dan mengembalikan pasangan baru
	access2, refresh2, err := ts.RotateRefreshToken(refresh)
	require.NoError(t, err)
	require.NotEmpty(t, access2)
	require.NotEqual(t, refresh, refresh2)

	// Replay token lama gagal dengan InvalidTokenError
	_, _, err = ts.RotateRefreshToken(refresh)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, utils.TypeInvalidToken, appErr.ErrorType)

	// Token hasil rotasi masih bisa dipakai
	_, _, err = ts.RotateRefreshToken(refresh2)
	require.NoError(t, err)
}

func TestRotateExpiredRefreshToken(t *testing.T) {
	db := setupServiceTestDB(t)
	ts := NewTokenService(db)

	row := models.RefreshToken{
		Token:     "stale-token",
		AccountID: 2,
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, db.Create(&row).Error)

	_, _, err := ts.RotateRefreshToken("stale-token")
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, utils.TypeInvalidToken, appErr.ErrorType)
}

func TestRevokeRefreshTokenIdempotent(t *testing.T) {
	db := setupServiceTestDB(t)
	ts := NewTokenService(db)

	var account models.Account
	require.NoError(t, db.Where("email = ?", "owner@example.com").First(&account).Error)

	_, refresh, err := ts.IssueStaffSession(account)
	require.NoError(t, err)

	require.NoError(t, ts.RevokeRefreshToken(refresh))
	// Pencabutan ulang tetap sukses
	require.NoError(t, ts.RevokeRefreshToken(refresh))

	_, _, err = ts.RotateRefreshToken(refresh)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, utils.TypeInvalidToken, appErr.ErrorType)
}

func TestIssueGuestSession(t *testing.T) {
	db := setupServiceTestDB(t)
	ts := NewTokenService(db)

	token, guest, err := ts.IssueGuestSession(3, "table3-token", "Guest A")
	require.NoError(t, err)
	assert.Equal(t, "Guest A", guest.Name)
	assert.Equal(t, 3, guest.TableNumber)

	identity, err := utils.ParseToken(token)
	require.NoError(t, err)
	assert.True(t, identity.IsGuest())
	assert.Equal(t, guest.ID, identity.GuestID)
	assert.Equal(t, 3, identity.TableNumber)
}

func TestIssueGuestSessionRejections(t *testing.T) {
	db := setupServiceTestDB(t)
	ts := NewTokenService(db)

	// Token meja salah
	_, _, err := ts.IssueGuestSession(3, "wrong-token", "Guest A")
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, utils.TypeInvalidTableToken, appErr.ErrorType)

	// Meja tidak dikenal
	_, _, err = ts.IssueGuestSession(42, "table42-token", "Guest A")
	appErr, ok = utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, utils.TypeInvalidTableToken, appErr.ErrorType)

	// Nama kosong
	_, _, err = ts.IssueGuestSession(3, "table3-token", "   ")
	appErr, ok = utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, utils.TypeValidation, appErr.ErrorType)

	// Meja tidak Available
	require.NoError(t, db.Model(&models.Table{}).Where("number = ?", 3).Update("status", models.TableReserved).Error)
	_, _, err = ts.IssueGuestSession(3, "table3-token", "Guest A")
	appErr, ok = utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, utils.TypeInvalidTableToken, appErr.ErrorType)
}

func TestRotatedTableTokenBlocksNewSessions(t *testing.T) {
	db := setupServiceTestDB(t)
	ts := NewTokenService(db)

	// Sesi lama dibuat dengan token lama
	oldSession, _, err := ts.IssueGuestSession(3, "table3-token", "Guest A")
	require.NoError(t, err)

	// Rotasi token meja
	require.NoError(t, db.Model(&models.Table{}).Where("number = ?", 3).Update("token", "table3-token-v2").Error)

	// Token lama tidak laku untuk sesi baru
	_, _, err = ts.IssueGuestSession(3, "table3-token", "Guest B")
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, utils.TypeInvalidTableToken, appErr.ErrorType)

	// Sesi guest lama tetap valid sampai kadaluarsa sendiri
	identity, err := utils.ParseToken(oldSession)
	require.NoError(t, err)
	assert.True(t, identity.IsGuest())
}
