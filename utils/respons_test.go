package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	InitLogger()
	os.Exit(m.Run())
}

func respondErrTo(t *testing.T, err error) (*httptest.ResponseRecorder, JSONResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondError(c, err)

	var resp JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

// Pelanggaran unique constraint yang lolos pre-check (dua create paralel)
// harus jadi 409 UniquenessConflictError, bukan 500.
func TestRespondErrorMapsDuplicateKey(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	type uniqueRow struct {
		ID   uint   `gorm:"primaryKey"`
		Code string `gorm:"unique;not null"`
	}
	require.NoError(t, db.AutoMigrate(&uniqueRow{}))
	require.NoError(t, db.Create(&uniqueRow{Code: "meja-1"}).Error)

	dupErr := db.Create(&uniqueRow{Code: "meja-1"}).Error
	require.Error(t, dupErr)

	w, resp := respondErrTo(t, dupErr)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, TypeUniquenessConflict, resp.ErrorType)
	assert.False(t, resp.Status)
}

func TestRespondErrorHidesUnknownErrors(t *testing.T) {
	w, resp := respondErrTo(t, assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, TypeInternal, resp.ErrorType)
	assert.Equal(t, "internal server error", resp.Message)
}
