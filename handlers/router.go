package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/StellaShiina/inventory-ui/middleware"
)

// Router builds the backend's routes. The database and auth packages must be
// initialised first.
func Router(logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLog(logger), gin.Recovery())
	r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	// Pages
	r.GET("/", middleware.RedirectIfAuthenticated(), LoginPage)
	r.GET("/register", middleware.RedirectIfAuthenticated(), RegisterPage)
	r.GET("/dashboard", middleware.AuthPageRequired(), DashboardPage)

	api := r.Group("/api")
	{
		api.POST("/register", RegisterHandler)
		api.POST("/login", LoginHandler)
		api.POST("/logout", LogoutHandler)

		private := api.Group("", middleware.AuthRequired())
		{
			private.GET("/profile", ProfileHandler)

			items := private.Group("/items")
			{
				items.GET("", ListItems)
				items.POST("", CreateItem)
				items.GET("/:id", GetItem)
				items.PUT("/:id", UpdateItem)
				items.DELETE("/:id", DeleteItem)
			}
			private.GET("/reports/summary", SummaryReport)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
	})
	return r
}
