package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nammakadai/namma-kadai-api/controllers"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
}
