package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nammakadai/namma-kadai-api/controllers"
	"github.com/nammakadai/namma-kadai-api/middlewares"
)

func ProfileRoutes(server *gin.Engine) {
	server.GET("/farmers/:mobile", controllers.GetFarmerProfile)
	server.PUT("/farmers/:mobile", middlewares.RequireAuth(), controllers.UpdateFarmerProfile)
	server.GET("/customers/:mobile", controllers.GetCustomerProfile)
	server.PUT("/customers/:mobile", middlewares.RequireAuth(), controllers.UpdateCustomerProfile)
}
