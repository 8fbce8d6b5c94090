package router

import (
	"github.com/carhive/carhive-backend/config"
	"github.com/carhive/carhive-backend/internal/app/controller"
	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController         *controller.AuthController
	carController          *controller.CarController
	partController         *controller.PartController
	cartController         *controller.CartController
	orderController        *controller.OrderController
	purchaseController     *controller.PurchaseController
	testDriveController    *controller.TestDriveController
	loanController         *controller.LoanController
	companyController      *controller.CompanyController
	adminController        *controller.AdminController
	uploadController       *controller.UploadController
	notificationController *controller.NotificationController
	authMiddleware         *middleware.AuthMiddleware
	config                 *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	carController *controller.CarController,
	partController *controller.PartController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	purchaseController *controller.PurchaseController,
	testDriveController *controller.TestDriveController,
	loanController *controller.LoanController,
	companyController *controller.CompanyController,
	adminController *controller.AdminController,
	uploadController *controller.UploadController,
	notificationController *controller.NotificationController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:         authController,
		carController:          carController,
		partController:         partController,
		cartController:         cartController,
		orderController:        orderController,
		purchaseController:     purchaseController,
		testDriveController:    testDriveController,
		loanController:         loanController,
		companyController:      companyController,
		adminController:        adminController,
		uploadController:       uploadController,
		notificationController: notificationController,
		authMiddleware:         authMiddleware,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "CarHive API is running",
		})
	})

	authn := r.authMiddleware.Authenticate()
	companyOnly := r.authMiddleware.RequireRole(model.RoleCompany)
	adminOnly := r.authMiddleware.RequireRole(model.RoleAdmin)
	sellerOrAdmin := r.authMiddleware.RequireRole(model.RoleCompany, model.RoleAdmin)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", authn, r.authController.Logout)
			auth.GET("/me", authn, r.authController.Me)
		}

		cars := v1.Group("/cars")
		{
			cars.GET("", r.carController.List)
			cars.GET("/:id", r.carController.Get)
		}

		parts := v1.Group("/parts")
		{
			parts.GET("", r.partController.List)
			parts.GET("/:id", r.partController.Get)
		}

		companies := v1.Group("/companies")
		{
			companies.GET("", r.companyController.ListCompanies)
			companies.GET("/:id", r.companyController.GetCompany)
			companies.POST("/requests", r.companyController.SubmitRequest)
		}

		cart := v1.Group("/cart", authn)
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.POST("/:id/increase", r.cartController.IncreaseItem)
			cart.POST("/:id/decrease", r.cartController.DecreaseItem)
			cart.DELETE("/:id", r.cartController.RemoveItem)
		}

		orders := v1.Group("/orders", authn)
		{
			orders.POST("/checkout", r.orderController.Checkout)
			orders.GET("", r.orderController.ListMine)
			orders.GET("/:id", r.orderController.Get)
			orders.POST("/:id/pay", r.orderController.Pay)
			orders.POST("/:id/cancel", r.orderController.Cancel)
		}

		purchases := v1.Group("/purchases", authn)
		{
			purchases.POST("", r.purchaseController.Buy)
			purchases.GET("", r.purchaseController.ListMine)
			purchases.GET("/:id", r.purchaseController.Get)
		}

		testDrives := v1.Group("/test-drives", authn)
		{
			testDrives.POST("", r.testDriveController.Book)
			testDrives.GET("", r.testDriveController.ListMine)
			testDrives.POST("/:id/cancel", r.testDriveController.Cancel)
		}

		loans := v1.Group("/loans", authn)
		{
			loans.POST("", r.loanController.Apply)
			loans.GET("", r.loanController.ListMine)
			loans.GET("/:id", r.loanController.Get)
			loans.PUT("/:id", r.loanController.Edit)
		}

		notifications := v1.Group("/notifications", authn)
		{
			notifications.GET("", r.notificationController.List)
			notifications.POST("/:id/read", r.notificationController.MarkRead)
			notifications.POST("/read-all", r.notificationController.MarkAllRead)
			notifications.GET("/ws", r.notificationController.Connect)
		}

		upload := v1.Group("/upload", authn, sellerOrAdmin)
		{
			upload.POST("/presign", r.uploadController.Presign)
		}

		company := v1.Group("/company", authn, companyOnly)
		{
			company.GET("/profile", r.companyController.GetMine)
			company.PUT("/profile", r.companyController.UpdateMine)
			company.GET("/dashboard", r.companyController.Dashboard)

			company.GET("/cars", r.carController.ListMine)
			company.POST("/cars", r.carController.Create)
			company.PUT("/cars/:id", r.carController.Update)
			company.PATCH("/cars/:id/status", r.carController.UpdateStatus)
			company.DELETE("/cars/:id", r.carController.Delete)

			company.GET("/parts", r.partController.ListMine)
			company.POST("/parts", r.partController.Create)
			company.PUT("/parts/:id", r.partController.Update)
			company.DELETE("/parts/:id", r.partController.Delete)

			company.GET("/orders", r.orderController.SoldItems)
			company.GET("/purchases", r.purchaseController.ListForCompany)
			company.PATCH("/purchases/:id/status", r.purchaseController.Resolve)
			company.GET("/test-drives", r.testDriveController.ListForCompany)
			company.PATCH("/test-drives/:id/status", r.testDriveController.UpdateStatus)
			company.GET("/loans", r.loanController.ListForCompany)
			company.PATCH("/loans/:id/review", r.loanController.Review)
		}

		admin := v1.Group("/admin", authn, adminOnly)
		{
			admin.GET("/dashboard", r.adminController.Dashboard)
			admin.GET("/users", r.adminController.ListUsers)
			admin.GET("/users/:id", r.adminController.GetUser)

			admin.GET("/company-requests", r.adminController.ListRequests)
			admin.POST("/company-requests/:id/approve", r.adminController.ApproveRequest)
			admin.POST("/company-requests/:id/reject", r.adminController.RejectRequest)

			admin.POST("/companies", r.adminController.CreateCompany)
			admin.PUT("/companies/:id", r.adminController.UpdateCompany)
			admin.DELETE("/companies/:id", r.adminController.DeleteCompany)

			admin.GET("/orders", r.orderController.ListAll)
			admin.PATCH("/orders/:id/status", r.orderController.UpdateStatus)
			admin.GET("/purchases", r.purchaseController.ListAll)
			admin.PATCH("/purchases/:id/status", r.purchaseController.Resolve)
			admin.GET("/test-drives", r.testDriveController.ListAll)
			admin.PATCH("/test-drives/:id/status", r.testDriveController.UpdateStatus)
			admin.GET("/loans", r.loanController.ListAll)
			admin.PATCH("/loans/:id/review", r.loanController.Review)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
