package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/kiwimarket-backend/config"
	"github.com/ikkim/kiwimarket-backend/internal/app/controller"
	"github.com/ikkim/kiwimarket-backend/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	authController    *controller.AuthController
	addressController *controller.AddressController
	userController    *controller.UserController
	productController *controller.ProductController
	authMiddleware    *middleware.AuthMiddleware
	config            *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	addressController *controller.AddressController,
	userController *controller.UserController,
	productController *controller.ProductController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:    authController,
		addressController: addressController,
		userController:    userController,
		productController: productController,
		authMiddleware:    authMiddleware,
		config:            cfg,
	}
}

func (r *Router) Setup() (*gin.Engine, error) {
	gin.SetMode(r.config.Server.GinMode)

	if err := controller.RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "KIWIMARKET API is running",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	session := r.authMiddleware.Authenticate()

	user := router.Group("/user")
	{
		user.POST("/smscheck", r.authController.SMSCheck)
		user.POST("/checknum", r.authController.CheckNum)
		user.POST("/checknickname", r.authController.CheckNickname)
		user.POST("/signup", r.authController.SignUp)

		user.GET("/selectmyaddress", session, r.addressController.SelectMyAddress)
		user.POST("/selectmyaddress", session, r.addressController.SelectMyAddress)
		user.POST("/addmyaddress", session, r.addressController.AddMyAddress)
		user.POST("/deletemyaddress", session, r.addressController.DeleteMyAddress)
		user.GET("/getnearaddress/:code", session, r.addressController.GetNearAddress)

		user.GET("/profile", session, r.userController.Profile)
		user.GET("/saleshistory", session, r.userController.SalesHistory)
		user.POST("/changestatus/:product_id", session, r.userController.ChangeStatus)
	}

	product := router.Group("/product")
	{
		product.GET("/:address_id", r.productController.ListByAddress)
		product.GET("/detail/:product_id", r.productController.Detail)
		product.GET("/selleritems/:uploader_id", r.productController.SellerItems)
		product.GET("/relateditems/:address_id", r.productController.RelatedItems)
		product.GET("/comment/:product_id", r.productController.Comments)

		product.POST("/productupload/:address_id", session, r.productController.ProductUpload)
		product.POST("/commentupload/:product_id", session, r.productController.CommentUpload)
		product.POST("/wishlist/:product_id", session, r.productController.Wishlist)
	}

	return router, nil
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
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
