package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	os.Exit(m.Run())
}

func testCtx(identity *utils.Identity) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	if identity != nil {
		c.Set(identityKey, *identity)
	}
	return c
}

func ownerIdentity() *utils.Identity {
	return &utils.Identity{Kind: utils.IdentityStaff, AccountID: 1, Role: models.RoleOwner}
}

func employeeIdentity() *utils.Identity {
	return &utils.Identity{Kind: utils.IdentityStaff, AccountID: 2, Role: models.RoleEmployee}
}

func guestTestIdentity() *utils.Identity {
	return &utils.Identity{Kind: utils.IdentityGuest, GuestID: 5, TableNumber: 3}
}

func errType(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	return appErr.ErrorType
}

func TestRequireLogined(t *testing.T) {
	assert.Equal(t, utils.TypeUnauthenticated, errType(t, RequireLogined(testCtx(nil))))
	assert.NoError(t, RequireLogined(testCtx(ownerIdentity())))
	assert.NoError(t, RequireLogined(testCtx(guestTestIdentity())))
}

func TestRoleGuards(t *testing.T) {
	assert.NoError(t, RequireOwner(testCtx(ownerIdentity())))
	assert.Equal(t, utils.TypeForbidden, errType(t, RequireOwner(testCtx(employeeIdentity()))))
	assert.Equal(t, utils.TypeForbidden, errType(t, RequireOwner(testCtx(guestTestIdentity()))))
	assert.Equal(t, utils.TypeUnauthenticated, errType(t, RequireOwner(testCtx(nil))))

	assert.NoError(t, RequireEmployee(testCtx(employeeIdentity())))
	assert.Equal(t, utils.TypeForbidden, errType(t, RequireEmployee(testCtx(ownerIdentity()))))

	assert.NoError(t, RequireGuest(testCtx(guestTestIdentity())))
	assert.Equal(t, utils.TypeForbidden, errType(t, RequireGuest(testCtx(employeeIdentity()))))
}

func TestAnyOfShortCircuits(t *testing.T) {
	called := false
	spy := func(c *gin.Context) error {
		called = true
		return nil
	}

	// Owner lolos di guard pertama; guard berikutnya tidak dievaluasi
	err := AnyOf(RequireOwner, spy)(testCtx(ownerIdentity()))
	assert.NoError(t, err)
	assert.False(t, called)

	// Employee gagal di RequireOwner lalu lolos di RequireEmployee
	err = AnyOf(RequireOwner, RequireEmployee)(testCtx(employeeIdentity()))
	assert.NoError(t, err)

	// Semua gagal: error guard pertama yang keluar
	err = AnyOf(RequireOwner, RequireEmployee)(testCtx(guestTestIdentity()))
	assert.Equal(t, utils.TypeForbidden, errType(t, err))
}

func TestAllOfShortCircuits(t *testing.T) {
	called := false
	spy := func(c *gin.Context) error {
		called = true
		return nil
	}

	err := AllOf(RequireLogined, spy)(testCtx(nil))
	assert.Equal(t, utils.TypeUnauthenticated, errType(t, err))
	assert.False(t, called)

	err = AllOf(RequireLogined, AnyOf(RequireOwner, RequireEmployee))(testCtx(employeeIdentity()))
	assert.NoError(t, err)
}

func TestPauseGate(t *testing.T) {
	pause := NewPauseState()
	gate := pause.Gate()

	// Tanpa pause semua lewat
	assert.NoError(t, gate(testCtx(nil)))
	assert.NoError(t, gate(testCtx(guestTestIdentity())))

	pause.Set(true)
	assert.Equal(t, utils.TypeServiceUnavailable, errType(t, gate(testCtx(nil))))
	assert.Equal(t, utils.TypeServiceUnavailable, errType(t, gate(testCtx(employeeIdentity()))))
	assert.Equal(t, utils.TypeServiceUnavailable, errType(t, gate(testCtx(guestTestIdentity()))))
	// Owner tetap lolos selama pause
	assert.NoError(t, gate(testCtx(ownerIdentity())))

	pause.Set(false)
	assert.NoError(t, gate(testCtx(employeeIdentity())))
}

func TestRequireMiddlewareRespondsStructured(t *testing.T) {
	r := gin.New()
	r.Use(Authenticate())
	r.GET("/protected", Require(RequireLogined), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// Anonim -> 401 dengan envelope terstruktur
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var resp utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Status)
	assert.Equal(t, utils.TypeUnauthenticated, resp.ErrorType)

	// Token valid -> lolos
	token, err := utils.GenerateStaffToken(1, models.RoleOwner, time.Hour)
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Token rusak langsung ditolak oleh Authenticate
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, utils.TypeMalformedToken, resp.ErrorType)
}
