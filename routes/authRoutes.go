package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nammakadai/namma-kadai-api/controllers"
)

func AuthRoutes(server *gin.Engine) {
	auth := server.Group("/auth")
	{
		auth.POST("/farmer/signup", controllers.FarmerSignup)
		auth.POST("/farmer/login", controllers.FarmerLogin)
		auth.POST("/customer/signup", controllers.CustomerSignup)
		auth.POST("/customer/login", controllers.CustomerLogin)
	}
}
