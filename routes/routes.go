package routes

import (
	"os"
	"strings"

	"agencydesk-backend/config"
	"agencydesk-backend/controllers"
	"agencydesk-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:5173", "http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGIN"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.GET("/refresh-token", controllers.RefreshAccessToken)

		auth.Use(utils.AuthMiddleware())
		auth.POST("/logout", controllers.Logout)
		auth.GET("/me", controllers.Me)
		auth.PATCH("/update", controllers.UpdateAccount)
	}

	api := v1.Group("")
	api.Use(utils.AuthMiddleware())
	{
		customers := api.Group("/customers", utils.RequireRoles("admin", "employee"))
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/next-id", controllers.GetNextCustomerID)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", utils.RequireRoles("admin"), controllers.DeleteCustomer)
		}

		catalog := api.Group("/services")
		{
			catalog.POST("", utils.RequireRoles("admin"), controllers.CreateService)
			catalog.GET("", utils.RequireRoles("admin", "employee"), controllers.GetServices)
			catalog.GET("/next-id", utils.RequireRoles("admin"), controllers.GetNextServiceID)
			catalog.GET("/:id", utils.RequireRoles("admin"), controllers.GetService)
			catalog.PUT("/:id", utils.RequireRoles("admin"), controllers.UpdateService)
			catalog.DELETE("/:id", utils.RequireRoles("admin"), controllers.DeleteService)
		}

		employees := api.Group("/employees")
		{
			employees.POST("", utils.RequireRoles("admin"), controllers.CreateEmployee)
			employees.GET("", utils.RequireRoles("admin"), controllers.GetEmployees)
			employees.GET("/:id", utils.RequireRoles("admin", "employee"), controllers.GetEmployee)
			employees.PUT("/:id", utils.RequireRoles("admin"), controllers.UpdateEmployee)
			employees.DELETE("/:id", utils.RequireRoles("admin"), controllers.DeleteEmployee)
		}

		reports := api.Group("/reports", utils.RequireRoles("admin"))
		{
			reports.GET("/dashboard", controllers.GetDashboardReport)
		}
	}

	return r
}
