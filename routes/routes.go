package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"luxe-commerce/controllers"
	"luxe-commerce/middleware"
	"luxe-commerce/repositories"
	"luxe-commerce/services"
)

func SetupRoutes(router *gin.Engine, cartStore *services.CartStore) {
	productRepo := repositories.NewProductRepository()
	orderRepo := repositories.NewOrderRepository()
	reviewRepo := repositories.NewReviewRepository()

	var mailer services.Mailer
	if emailService, err := services.NewEmailService(); err != nil {
		log.Println("Email disabled:", err)
	} else {
		mailer = emailService
	}

	checkout := services.NewCheckoutService(productRepo, orderRepo, cartStore, mailer)

	authCtrl := controllers.NewAuthController(services.NewAuthService())
	productCtrl := controllers.NewProductController(productRepo)
	reviewCtrl := controllers.NewReviewController(reviewRepo)
	cartCtrl := controllers.NewCartController(cartStore, productRepo)
	orderCtrl := controllers.NewOrderController(checkout, orderRepo)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/register", authCtrl.Register)
	router.POST("/auth/login", authCtrl.Login)
	router.GET("/products", productCtrl.GetAllProducts)
	router.GET("/products/:id", productCtrl.GetProductByID)
	router.GET("/products/:id/reviews", reviewCtrl.GetProductReviews)
	router.GET("/receipts/view", orderCtrl.ViewReceipt)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/auth/profile", authCtrl.GetProfile)
		auth.PATCH("/auth/profile", authCtrl.UpdateProfile)
		auth.POST("/auth/change-password", authCtrl.ChangePassword)

		auth.GET("/cart", cartCtrl.GetCart)
		auth.DELETE("/cart", cartCtrl.ClearCart)
		auth.POST("/cart/items", cartCtrl.AddItem)
		auth.PATCH("/cart/items", cartCtrl.UpdateItem)
		auth.DELETE("/cart/items", cartCtrl.RemoveItem)

		auth.POST("/orders", orderCtrl.PlaceOrder)
		auth.GET("/orders", orderCtrl.GetMyOrders)
		auth.GET("/orders/:id", orderCtrl.GetMyOrder)
		auth.POST("/orders/:id/payment", orderCtrl.SubmitPayment)
		auth.GET("/payments/:id/receipt", orderCtrl.GetReceiptURL)

		auth.POST("/products/:id/reviews", reviewCtrl.SubmitReview)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/dashboard", orderCtrl.GetDashboard)

		admin.POST("/products", productCtrl.CreateProduct)
		admin.PATCH("/products/:id", productCtrl.UpdateProduct)
		admin.DELETE("/products/:id", productCtrl.DeleteProduct)

		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.GET("/orders/:id", orderCtrl.GetOrderByID)
		admin.PATCH("/orders/:id/status", orderCtrl.UpdateOrderStatus)
		admin.PATCH("/payments/:id/status", orderCtrl.UpdatePaymentStatus)
	}
}
