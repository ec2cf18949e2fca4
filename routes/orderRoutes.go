package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nammakadai/namma-kadai-api/controllers"
	"github.com/nammakadai/namma-kadai-api/middlewares"
)

func OrderRoutes(server *gin.Engine) {
	orders := server.Group("/orders", middlewares.RequireAuth())
	{
		orders.POST("", middlewares.RequireRole("customer"), controllers.CreateOrder)
		orders.GET("/farmer/:farmerId", controllers.GetOrdersByFarmer)
		orders.GET("/customer/:customerId", controllers.GetOrdersByCustomer)
	}
}
