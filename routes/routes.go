package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raulgarrigos/tapiocraft-server/controllers"
	"github.com/raulgarrigos/tapiocraft-server/middleware"
	"github.com/raulgarrigos/tapiocraft-server/services"
)

// Controllers groups every handler the router mounts.
type Controllers struct {
	Auth     *controllers.AuthController
	User     *controllers.UserController
	Product  *controllers.ProductController
	Store    *controllers.StoreController
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
	Order    *controllers.OrderController
	Review   *controllers.ReviewController
}

// Register mounts all API routes on the engine.
func Register(router *gin.Engine, ctrl Controllers, tokens *services.TokenService) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := router.Group("/auth")
	auth.Use(middleware.RateLimit())
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
	}

	products := router.Group("/products")
	{
		products.GET("", ctrl.Product.ListProducts)
		products.GET("/:productId", ctrl.Product.GetProduct)
	}

	review := router.Group("/review")
	{
		review.GET("/product/:productId", ctrl.Review.ListProductReviews)
		review.GET("/store/:storeId", ctrl.Review.ListStoreReviews)
		review.POST("", middleware.AuthRequired(tokens), ctrl.Review.CreateReview)
	}

	profile := router.Group("/profile")
	profile.Use(middleware.AuthRequired(tokens))
	{
		profile.GET("", ctrl.User.GetProfile)
		profile.PUT("", ctrl.User.UpdateProfile)
	}

	store := router.Group("/store")
	store.Use(middleware.AuthRequired(tokens))
	{
		store.POST("", ctrl.Store.CreateStore)
		store.GET("/:storeId", ctrl.Store.GetStore)
		store.PUT("/:storeId", ctrl.Store.UpdateStore)
		store.DELETE("/:storeId", ctrl.Store.DeleteStore)
		store.POST("/:storeId/products", ctrl.Store.AddProduct)
		store.GET("/:storeId/products", ctrl.Store.ListProducts)
		store.PUT("/:storeId/products/:productId", ctrl.Store.UpdateProduct)
		store.DELETE("/:storeId/products/:productId", ctrl.Store.DeleteProduct)
	}

	cart := router.Group("/cart")
	cart.Use(middleware.AuthRequired(tokens))
	{
		cart.GET("", ctrl.Cart.GetCart)
		cart.POST("/products/:productId", ctrl.Cart.AddProduct)
		cart.DELETE("/products/:productId", ctrl.Cart.RemoveProduct)
	}

	checkout := router.Group("/checkout")
	checkout.Use(middleware.AuthRequired(tokens))
	{
		checkout.POST("/:cartId/order", ctrl.Checkout.Checkout)
	}

	orders := router.Group("/orders")
	orders.Use(middleware.AuthRequired(tokens))
	{
		orders.GET("/:userId/list", ctrl.Order.ListOrders)
		orders.GET("/:userId/:orderId", ctrl.Order.GetOrder)
		orders.PUT("/:userId/:orderId", ctrl.Order.CancelOrder)
		orders.PUT("/:userId/:orderId/status", ctrl.Order.UpdateStatus)
	}
}
