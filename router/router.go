package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/controllers"
	"github.com/yeremiapane/restaurant-pos/hub"
	"github.com/yeremiapane/restaurant-pos/middlewares"
	"github.com/yeremiapane/restaurant-pos/services"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, h *hub.Hub, pause *middlewares.PauseState) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// Rate limiter global (50 request per detik per IP)
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())
	r.Use(middlewares.Authenticate())

	tokenSvc := services.NewTokenService(db)
	orderSvc := services.NewOrderService(db, h)

	authCtrl := controllers.NewAuthController(db, tokenSvc)
	accountCtrl := controllers.NewAccountController(db)
	tableCtrl := controllers.NewTableController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	dishCtrl := controllers.NewDishController(db)
	orderCtrl := controllers.NewOrderController(orderSvc)
	wsCtrl := controllers.NewWSController(h)
	systemCtrl := controllers.NewSystemController(pause)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	// Login dan refresh tidak kena pause gate: Owner harus tetap bisa
	// masuk untuk membereskan masalah lalu membuka pause.
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/login", authCtrl.Login)
		public.POST("/refresh-token", authCtrl.RefreshToken)
	}

	// Semua route lain lewat pause gate (Owner lolos)
	gated := r.Group("/")
	gated.Use(middlewares.Require(pause.Gate()))

	gated.POST("/guest-login", middlewares.NewStrictRateLimiter(), authCtrl.GuestLogin)

	// Menu read untuk siapa saja (termasuk guest yang belum login)
	gated.GET("/categories", categoryCtrl.GetAllCategories)
	gated.GET("/dishes", dishCtrl.GetAllDishes)
	gated.GET("/dishes/:dish_id", dishCtrl.GetDishByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED (staff ATAU guest)
	// ----------------------------------------------------------------
	logined := gated.Group("/")
	logined.Use(middlewares.Require(middlewares.RequireLogined))
	{
		logined.POST("/logout", authCtrl.Logout)
		logined.GET("/profile", authCtrl.GetProfile)
		logined.POST("/orders", orderCtrl.CreateOrder)
		// Staff bebas di semua edge yang sah; guest hanya boleh
		// membatalkan order miliknya (dicek di Order Engine)
		logined.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		logined.GET("/ws", wsCtrl.Handle)
	}

	// -- GUEST --
	guest := gated.Group("/guest")
	guest.Use(middlewares.Require(middlewares.RequireLogined, middlewares.RequireGuest))
	{
		guest.GET("/orders", orderCtrl.GetGuestOrders)
	}

	// ----------------------------------------------------------------
	//                      STAFF (Owner ATAU Employee)
	// ----------------------------------------------------------------
	staff := gated.Group("/")
	staff.Use(middlewares.Require(
		middlewares.RequireLogined,
		middlewares.AnyOf(middlewares.RequireOwner, middlewares.RequireEmployee),
	))
	{
		staff.GET("/orders", orderCtrl.GetAllOrders)
		staff.GET("/orders/:order_id", orderCtrl.GetOrderByID)

		staff.GET("/tables", tableCtrl.GetAllTables)
		staff.POST("/tables", tableCtrl.CreateTable)
		staff.GET("/tables/:number", tableCtrl.GetTableByNumber)
		staff.PATCH("/tables/:number", tableCtrl.UpdateTable)
		staff.DELETE("/tables/:number", tableCtrl.DeleteTable)
		staff.POST("/tables/:number/reset-token", tableCtrl.ResetTableToken)

		staff.POST("/categories", categoryCtrl.CreateCategory)
		staff.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
		staff.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

		staff.POST("/dishes", dishCtrl.CreateDish)
		staff.PATCH("/dishes/:dish_id", dishCtrl.UpdateDish)
		staff.DELETE("/dishes/:dish_id", dishCtrl.DeleteDish)
	}

	// ----------------------------------------------------------------
	//                      OWNER ONLY
	// ----------------------------------------------------------------
	owner := gated.Group("/admin")
	owner.Use(middlewares.Require(middlewares.RequireOwner))
	{
		owner.GET("/accounts", accountCtrl.GetAllAccounts)
		owner.POST("/accounts", accountCtrl.CreateEmployee)
		owner.POST("/pause", systemCtrl.PauseService)
		owner.DELETE("/pause", systemCtrl.ResumeService)
	}

	return r
}
