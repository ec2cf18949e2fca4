package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nammakadai/namma-kadai-api/controllers"
	"github.com/nammakadai/namma-kadai-api/middlewares"
)

func ProductRoutes(server *gin.Engine) {
	server.GET("/products", controllers.GetProducts)
	server.GET("/products/overview", controllers.GetProducts)

	farmerOnly := server.Group("/products", middlewares.RequireAuth(), middlewares.RequireRole("farmer"))
	{
		farmerOnly.POST("", controllers.CreateProduct)
		farmerOnly.PUT("/:id", controllers.UpdateProduct)
		farmerOnly.DELETE("/:id", controllers.DeleteProduct)
	}
}
