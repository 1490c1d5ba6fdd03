package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

func validTableStatus(s string) bool {
	switch s {
	case models.TableAvailable, models.TableHidden, models.TableReserved:
		return true
	}
	return false
}

// CreateTable -> menambahkan meja baru dengan token akses segar.
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Number   int    `json:"number" binding:"required"`
		Capacity int    `json:"capacity" binding:"required"`
		Status   string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.ErrValidation(err.Error()))
		return
	}

	status := models.TableAvailable
	if req.Status != "" {
		if !validTableStatus(req.Status) {
			utils.RespondError(c, utils.ErrValidation("unknown table status"))
			return
		}
		status = req.Status
	}

	var count int64
	tc.DB.Model(&models.Table{}).Where("number = ?", req.Number).Count(&count)
	if count > 0 {
		utils.RespondError(c, utils.ErrUniquenessConflict("table number already exists"))
		return
	}

	table := models.Table{
		Number:   req.Number,
		Capacity: req.Capacity,
		Status:   status,
		Token:    uuid.NewString(),
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.InfoLogger.Printf("New table created: %d (status=%s)", table.Number, table.Status)
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

// GetAllTables -> menampilkan seluruh meja.
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Order("number asc").Find(&tables).Error; err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByNumber -> detail satu meja.
func (tc *TableController) GetTableByNumber(c *gin.Context) {
	table, err := tc.findByNumberParam(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTable -> ubah status / kapasitas meja.
func (tc *TableController) UpdateTable(c *gin.Context) {
	table, err := tc.findByNumberParam(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req struct {
		Status   *string `json:"status"`
		Capacity *int    `json:"capacity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.ErrValidation(err.Error()))
		return
	}

	if req.Status != nil {
		if !validTableStatus(*req.Status) {
			utils.RespondError(c, utils.ErrValidation("unknown table status"))
			return
		}
		table.Status = *req.Status
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			utils.RespondError(c, utils.ErrValidation("capacity must be positive"))
			return
		}
		table.Capacity = *req.Capacity
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.InfoLogger.Printf("Table %d updated (status=%s)", table.Number, table.Status)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// ResetTableToken -> rotasi token akses meja. Token lama langsung berhenti
// berlaku untuk guest-login baru; sesi guest yang sudah ada tetap jalan
// sampai tokennya sendiri kadaluarsa.
func (tc *TableController) ResetTableToken(c *gin.Context) {
	table, err := tc.findByNumberParam(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	table.Token = uuid.NewString()
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.InfoLogger.Printf("Table %d access token rotated", table.Number)
	utils.RespondJSON(c, http.StatusOK, "Table token reset", table)
}

// DeleteTable -> menghapus meja.
func (tc *TableController) DeleteTable(c *gin.Context) {
	table, err := tc.findByNumberParam(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"number": table.Number})
}

func (tc *TableController) findByNumberParam(c *gin.Context) (models.Table, error) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		return models.Table{}, utils.ErrValidation("table number must be an integer")
	}

	var table models.Table
	if err := tc.DB.Where("number = ?", number).First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Table{}, utils.ErrNotFound("table not found")
		}
		return models.Table{}, err
	}
	return table, nil
}
