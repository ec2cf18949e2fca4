package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Namma Kadai API, the marketplace connecting farmers and customers.

The following are the endpoints for this API:

AUTH
- POST "/auth/farmer/signup" - Register a farmer account
- POST "/auth/farmer/login" - Farmer login
- POST "/auth/customer/signup" - Register a customer account
- POST "/auth/customer/login" - Customer login

PROFILE
- GET "/farmers/:mobile" - Get farmer profile
- PUT "/farmers/:mobile" - Update farmer profile
- GET "/customers/:mobile" - Get customer profile
- PUT "/customers/:mobile" - Update customer profile

PRODUCT
- POST "/products" - Add a product (farmer only)
- GET "/products" - List products, optionally ?farmerId=
- GET "/products/overview" - List all products
- PUT "/products/:id" - Update a product (farmer only)
- DELETE "/products/:id" - Delete a product (farmer only)

ORDER
- POST "/orders" - Place orders from a cart (one per farmer)
- GET "/orders/farmer/:farmerId" - Orders addressed to a farmer
- GET "/orders/customer/:customerId" - A customer's order history`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
