package services

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/hub"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Account{},
		&models.Table{},
		&models.Guest{},
		&models.Category{},
		&models.Dish{},
		&models.DishSnapshot{},
		&models.Order{},
		&models.RefreshToken{},
	)
	require.NoError(t, err)

	owner := models.Account{Name: "Owner", Email: "owner@example.com", Password: "x", Role: models.RoleOwner}
	require.NoError(t, db.Create(&owner).Error)
	employee := models.Account{Name: "Employee 1", Email: "employee1@example.com", Password: "x", Role: models.RoleEmployee, OwnerID: &owner.ID}
	require.NoError(t, db.Create(&employee).Error)

	category := models.Category{Name: "Noodles"}
	require.NoError(t, db.Create(&category).Error)
	dish := models.Dish{CategoryID: category.ID, Name: "Pho", Price: 40000, Description: "Vietnamese noodle soup", Status: models.DishAvailable}
	require.NoError(t, db.Create(&dish).Error)

	table := models.Table{Number: 3, Capacity: 2, Status: models.TableAvailable, Token: "table3-token"}
	require.NoError(t, db.Create(&table).Error)

	guest := models.Guest{Name: "Guest A", TableNumber: 3}
	require.NoError(t, db.Create(&guest).Error)

	return db
}

func staffIdentity(accountID uint, role string) utils.Identity {
	return utils.Identity{Kind: utils.IdentityStaff, AccountID: accountID, Role: role}
}

func guestIdentity(guestID uint, tableNumber int) utils.Identity {
	return utils.Identity{Kind: utils.IdentityGuest, GuestID: guestID, TableNumber: tableNumber}
}

func TestCreateOrderFreezesSnapshot(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewOrderService(db, hub.NewHub())

	order, err := svc.CreateOrder(guestIdentity(1, 3), 0, 1, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, 3, order.TableNumber)
	assert.Equal(t, float64(40000), order.DishSnapshot.Price)
	require.NotNil(t, order.GuestID)
	assert.Equal(t, uint(1), *order.GuestID)
	assert.Nil(t, order.HandlerID)

	// Ubah lalu hapus dish sumber; snapshot tidak boleh ikut berubah
	require.NoError(t, db.Model(&models.Dish{}).Where("id = ?", 1).Update("price", 99000).Error)
	require.NoError(t, db.Delete(&models.Dish{}, 1).Error)

	var snapshot models.DishSnapshot
	require.NoError(t, db.First(&snapshot, order.DishSnapshotID).Error)
	assert.Equal(t, float64(40000), snapshot.Price)
	assert.Equal(t, "Vietnamese noodle soup", snapshot.Description)
}

func TestCreateOrderByStaffRecordsHandler(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewOrderService(db, hub.NewHub())

	order, err := svc.CreateOrder(staffIdentity(2, models.RoleEmployee), 3, 1, 1, nil)
	require.NoError(t, err)
	require.NotNil(t, order.HandlerID)
	assert.Equal(t, uint(2), *order.HandlerID)
	assert.Nil(t, order.GuestID)
}

func TestCreateOrderValidation(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewOrderService(db, hub.NewHub())

	_, err := svc.CreateOrder(guestIdentity(1, 3), 0, 1, 0, nil)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, utils.TypeValidation, appErr.ErrorType)

	_, err = svc.CreateOrder(guestIdentity(1, 3), 0, 999, 1, nil)
	appErr, ok = utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, utils.TypeNotFound, appErr.ErrorType)
}

func TestCreateOrderDishUnavailable(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewOrderService(db, hub.NewHub())

	require.NoError(t, db.Model(&models.Dish{}).Where("id = ?", 1).Update("status", models.DishUnavailable).Error)

	_, err := svc.CreateOrder(guestIdentity(1, 3), 0, 1, 1, nil)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, utils.TypeDishUnavailable, appErr.ErrorType)
}

func TestStatusTransitionTable(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewOrderService(db, hub.NewHub())
	employee := staffIdentity(2, models.RoleEmployee)

	cases := []struct {
		from, to string
		allowed  bool
	}{
		{models.OrderPending, models.OrderProcessing, true},
		{models.OrderPending, models.OrderRejected, true},
		{models.OrderPending, models.OrderPaid, false},
		{models.OrderProcessing, models.OrderPaid, true},
		{models.OrderProcessing, models.OrderRejected, true},
		{models.OrderProcessing, models.OrderPending, false},
		{models.OrderPaid, models.OrderRejected, false},
		{models.OrderPaid, models.OrderPending, false},
		{models.OrderRejected, models.OrderProcessing, false},
		{models.OrderRejected, models.OrderPaid, false},
	}

	for _, tc := range cases {
		order, err := svc.CreateOrder(employee, 3, 1, 1, nil)
		require.NoError(t, err)
		require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).Update("status", tc.from).Error)

		updated, err := svc.UpdateStatus(employee, order.ID, tc.to)
		if tc.allowed {
			require.NoError(t, err, "%s -> %s should be allowed", tc.from, tc.to)
			assert.Equal(t, tc.to, updated.Status)
			continue
		}

		appErr, ok := utils.AsAppError(err)
		require.True(t, ok, "%s -> %s should fail", tc.from, tc.to)
		assert.Equal(t, utils.TypeInvalidTransition, appErr.ErrorType)

		// Status tidak boleh berubah pada transisi yang ditolak
		var current models.Order
		require.NoError(t, db.First(&current, order.ID).Error)
		assert.Equal(t, tc.from, current.Status)
	}
}

func TestProcessingRecordsHandler(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewOrderService(db, hub.NewHub())

	order, err := svc.CreateOrder(guestIdentity(1, 3), 0, 1, 1, nil)
	require.NoError(t, err)
	require.Nil(t, order.HandlerID)

	updated, err := svc.UpdateStatus(staffIdentity(2, models.RoleEmployee), order.ID, models.OrderProcessing)
	require.NoError(t, err)
	require.NotNil(t, updated.HandlerID)
	assert.Equal(t, uint(2), *updated.HandlerID)
}

func TestConcurrentTransitionConflict(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewOrderService(db, hub.NewHub())

	order, err := svc.CreateOrder(guestIdentity(1, 3), 0, 1, 1, nil)
	require.NoError(t, err)

	// Dua penulis dengan expected pre-state yang sama: yang pertama
	// menang, yang kedua kalah dengan ConflictError
	handler := uint(2)
	require.NoError(t, svc.applyTransition(order.ID, models.OrderPending, models.OrderProcessing, &handler))

	err = svc.applyTransition(order.ID, models.OrderPending, models.OrderRejected, nil)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, utils.TypeConflict, appErr.ErrorType)

	// Status akhir milik pemenang
	var current models.Order
	require.NoError(t, db.First(&current, order.ID).Error)
	assert.Equal(t, models.OrderProcessing, current.Status)
	require.NotNil(t, current.HandlerID)
	assert.Equal(t, uint(2), *current.HandlerID)
}

func TestGuestCanOnlyCancelOwnOrder(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewOrderService(db, hub.NewHub())

	order, err := svc.CreateOrder(guestIdentity(1, 3), 0, 1, 1, nil)
	require.NoError(t, err)

	// Guest tidak pernah boleh memajukan status
	for _, status := range []string{models.OrderProcessing, models.OrderPaid} {
		_, err := svc.UpdateStatus(guestIdentity(1, 3), order.ID, status)
		appErr, ok := utils.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, utils.TypeForbidden, appErr.ErrorType)
	}

	// Guest lain / meja lain tidak boleh membatalkan
	otherGuest := models.Guest{Name: "Guest B", TableNumber: 3}
	require.NoError(t, db.Create(&otherGuest).Error)
	_, err = svc.UpdateStatus(guestIdentity(otherGuest.ID, 3), order.ID, models.OrderRejected)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, utils.TypeForbidden, appErr.ErrorType)

	// Pemiliknya sendiri boleh
	updated, err := svc.UpdateStatus(guestIdentity(1, 3), order.ID, models.OrderRejected)
	require.NoError(t, err)
	assert.Equal(t, models.OrderRejected, updated.Status)
}

func TestGuestCancelsOwnProcessingOrder(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewOrderService(db, hub.NewHub())

	order, err := svc.CreateOrder(guestIdentity(1, 3), 0, 1, 1, nil)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(staffIdentity(2, models.RoleEmployee), order.ID, models.OrderProcessing)
	require.NoError(t, err)

	// Order yang sudah dikerjakan masih bisa dibatalkan pemiliknya
	updated, err := svc.UpdateStatus(guestIdentity(1, 3), order.ID, models.OrderRejected)
	require.NoError(t, err)
	assert.Equal(t, models.OrderRejected, updated.Status)
}

func TestGuestOrderForcedToOwnTable(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewOrderService(db, hub.NewHub())

	other := models.Table{Number: 7, Capacity: 4, Status: models.TableAvailable, Token: "table7-token"}
	require.NoError(t, db.Create(&other).Error)

	// Guest meja 3 mencoba memesan untuk meja 7; order tetap jatuh ke meja 3
	order, err := svc.CreateOrder(guestIdentity(1, 3), 7, 1, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, order.TableNumber)
}
