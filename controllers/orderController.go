package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nammakadai/namma-kadai-api/initializers"
	"github.com/nammakadai/namma-kadai-api/models"
	"github.com/nammakadai/namma-kadai-api/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type checkoutLine struct {
	ProductID string  `json:"productId" binding:"required"`
	FarmerID  string  `json:"farmerId" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
}

type checkoutRequest struct {
	CustomerID    string         `json:"customerId" binding:"required"`
	FarmerID      string         `json:"farmerId"`
	Products      []checkoutLine `json:"products"`
	Address       string         `json:"address" binding:"required"`
	PaymentMethod string         `json:"paymentMethod" binding:"required"`
}

// parseCheckoutLines validates the submitted cart lines and converts them to
// order lines. Quantities below the minimum cart unit and negative prices are
// rejected outright.
func parseCheckoutLines(lines []checkoutLine) ([]models.OrderProduct, error) {
	parsed := make([]models.OrderProduct, 0, len(lines))
	for i, line := range lines {
		productID, err := primitive.ObjectIDFromHex(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: bad productId %q", i, models.ErrInvalidReference, line.ProductID)
		}
		farmerID, err := primitive.ObjectIDFromHex(line.FarmerID)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: bad farmerId %q", i, models.ErrInvalidReference, line.FarmerID)
		}
		if line.Quantity < models.MinCartUnit {
			return nil, fmt.Errorf("line %d: quantity must be at least %v kg", i, models.MinCartUnit)
		}
		if line.Price < 0 {
			return nil, fmt.Errorf("line %d: price must not be negative", i)
		}
		parsed = append(parsed, models.OrderProduct{
			ProductID: productID,
			FarmerID:  farmerID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}
	return parsed, nil
}

// documentInserter is the slice of *mongo.Collection the checkout loop needs.
type documentInserter interface {
	InsertOne(ctx context.Context, document interface{},
		opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// persistOrderGroups writes one order per farmer group. Groups are persisted
// independently: a failed insert never rolls back earlier ones, so the caller
// gets both the created orders and the failed groups and can retry just the
// failures.
func persistOrderGroups(ctx context.Context, orders documentInserter,
	customerID primitive.ObjectID, groups []models.FarmerGroup,
	address, paymentMethod string, now time.Time) ([]models.Order, []models.FailedGroup) {

	created := make([]models.Order, 0, len(groups))
	var failed []models.FailedGroup

	for _, group := range groups {
		order := models.Order{
			CustomerID:    customerID,
			FarmerID:      group.FarmerID,
			Products:      group.Products,
			Address:       address,
			PaymentMethod: paymentMethod,
			Total:         group.Total,
			Status:        models.OrderStatusPending,
			CreatedAt:     now,
		}

		result, err := orders.InsertOne(ctx, order)
		if err != nil {
			failed = append(failed, models.FailedGroup{
				FarmerID: group.FarmerID.Hex(),
				Reason:   err.Error(),
			})
			continue
		}
		if id, ok := result.InsertedID.(primitive.ObjectID); ok {
			order.ID = id
		}
		created = append(created, order)
	}

	return created, failed
}

// fetchFarmers loads the farmer documents for every group, validating the
// references before anything is written.
func fetchFarmers(ctx context.Context, groups []models.FarmerGroup) (map[primitive.ObjectID]models.Farmer, error) {
	ids := make([]primitive.ObjectID, 0, len(groups))
	for _, group := range groups {
		ids = append(ids, group.FarmerID)
	}

	cursor, err := initializers.GetCollection("farmers").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	farmers := make(map[primitive.ObjectID]models.Farmer, len(ids))
	for cursor.Next(ctx) {
		var farmer models.Farmer
		if err := cursor.Decode(&farmer); err != nil {
			return nil, err
		}
		farmers[farmer.ID] = farmer
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	for _, id := range ids {
		if _, ok := farmers[id]; !ok {
			return nil, fmt.Errorf("%w: farmer %s", models.ErrNotFound, id.Hex())
		}
	}
	return farmers, nil
}

// notifyFarmers mails each farmer whose order was just placed. Mail problems
// are logged and never affect the checkout response.
func notifyFarmers(orders []models.Order, farmers map[primitive.ObjectID]models.Farmer, customer models.Customer) {
	for _, order := range orders {
		farmer, ok := farmers[order.FarmerID]
		if !ok || farmer.Email == "" {
			continue
		}

		emailData := utils.EmailData{
			Name:         farmer.Name,
			Message:      fmt.Sprintf("%s from %s just placed an order with you.", customer.Name, customer.City),
			OrderID:      order.ID.Hex(),
			OrderTotal:   order.Total,
			DeliveryAddr: order.Address,
		}

		templatePath := filepath.Join("templates", "order_notification.html")
		if err := utils.SendEmail(farmer.Email, "New order on Namma Kadai", emailData, templatePath); err != nil {
			log.Println("Error sending order notification:", err)
		} else {
			log.Println("Order notification sent to:", farmer.Email)
		}
	}
}

// CreateOrder is the checkout endpoint. The submitted cart is partitioned by
// each line's snapshotted farmer and one pending order is persisted per
// farmer. A legacy single-farmer call shape (top-level farmerId) skips the
// grouping and yields exactly one order.
func CreateOrder(ctx *gin.Context) {
	var orderReq checkoutRequest
	if err := ctx.ShouldBindJSON(&orderReq); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(orderReq.Products) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, models.ErrEmptyCart.Error())
		return
	}

	customerID, err := primitive.ObjectIDFromHex(orderReq.CustomerID)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid customerId")
		return
	}

	if !models.IsValidPaymentMethod(orderReq.PaymentMethod) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid payment method")
		return
	}

	lines, err := parseCheckoutLines(orderReq.Products)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	dbCtx, cancel := dbContext(ctx)
	defer cancel()

	var customer models.Customer
	err = initializers.GetCollection("customers").FindOne(dbCtx, bson.M{"_id": customerID}).Decode(&customer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		sendErrorResponse(ctx, http.StatusNotFound, "Customer not found")
		return
	}
	if err != nil {
		log.Println("Database error fetching customer:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var groups []models.FarmerGroup
	if orderReq.FarmerID != "" {
		// Legacy single-farmer checkout: all lines go to the named farmer.
		farmerID, err := primitive.ObjectIDFromHex(orderReq.FarmerID)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid farmerId")
			return
		}
		groups = []models.FarmerGroup{{
			FarmerID: farmerID,
			Products: lines,
			Total:    models.LinesTotal(lines),
		}}
	} else {
		groups = models.GroupByFarmer(lines)
	}

	farmers, err := fetchFarmers(dbCtx, groups)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, err.Error())
			return
		}
		log.Println("Database error validating farmers:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	created, failed := persistOrderGroups(dbCtx, initializers.GetCollection("orders"),
		customerID, groups, orderReq.Address, orderReq.PaymentMethod, time.Now())

	notifyFarmers(created, farmers, customer)

	if len(failed) > 0 {
		log.Printf("Partial order placement: %d created, %d failed", len(created), len(failed))
		sendJSONResponse(ctx, http.StatusInternalServerError, gin.H{
			"message": "some orders could not be placed; retry only the failed farmers",
			"orders":  created,
			"failed":  failed,
		})
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"orders":  created,
	})
}

// accountSummary is the display-only slice of an account attached to order
// listings. Stored orders are never mutated by this resolution.
type accountSummary struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
}

func fetchAccountSummaries(ctx context.Context, collection string, ids []primitive.ObjectID) (map[primitive.ObjectID]accountSummary, error) {
	summaries := make(map[primitive.ObjectID]accountSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	cursor, err := initializers.GetCollection(collection).Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"name": 1, "email": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc struct {
			ID    primitive.ObjectID `bson:"_id"`
			Name  string             `bson:"name"`
			Email string             `bson:"email"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		summaries[doc.ID] = accountSummary{Name: doc.Name, Email: doc.Email}
	}
	return summaries, cursor.Err()
}

// GetOrdersByFarmer returns every order addressed to one farmer, with the
// ordering customer resolved for display. Product details are not looked up:
// each order line is a snapshot frozen at checkout, already carrying the
// product name and the price the customer agreed to, so a later edit or
// deletion of the product cannot rewrite the farmer's order history.
func GetOrdersByFarmer(ctx *gin.Context) {
	farmerID, err := primitive.ObjectIDFromHex(ctx.Param("farmerId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid farmerId")
		return
	}

	dbCtx, cancel := dbContext(ctx)
	defer cancel()

	cursor, err := initializers.GetCollection("orders").Find(dbCtx, bson.M{"farmerId": farmerID})
	if err != nil {
		log.Println("Database error fetching farmer orders:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	defer cursor.Close(dbCtx)

	var orders []models.Order
	if err := cursor.All(dbCtx, &orders); err != nil {
		log.Println("Database error decoding farmer orders:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to decode orders")
		return
	}

	customerIDs := make([]primitive.ObjectID, 0, len(orders))
	for _, order := range orders {
		customerIDs = append(customerIDs, order.CustomerID)
	}
	customers, err := fetchAccountSummaries(dbCtx, "customers", customerIDs)
	if err != nil {
		log.Println("Database error resolving customers:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to resolve customers")
		return
	}

	views := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		view := gin.H{"order": order}
		if summary, ok := customers[order.CustomerID]; ok {
			view["customer"] = summary
		}
		views = append(views, view)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": views})
}

// GetOrdersByCustomer returns a customer's order history, most recent first.
// The descending sort is what the history UI relies on.
func GetOrdersByCustomer(ctx *gin.Context) {
	customerID, err := primitive.ObjectIDFromHex(ctx.Param("customerId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid customerId")
		return
	}

	dbCtx, cancel := dbContext(ctx)
	defer cancel()

	cursor, err := initializers.GetCollection("orders").Find(dbCtx,
		bson.M{"customerId": customerID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		log.Println("Database error fetching customer orders:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	defer cursor.Close(dbCtx)

	var orders []models.Order
	if err := cursor.All(dbCtx, &orders); err != nil {
		log.Println("Database error decoding customer orders:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to decode orders")
		return
	}

	farmerIDs := make([]primitive.ObjectID, 0, len(orders))
	for _, order := range orders {
		farmerIDs = append(farmerIDs, order.FarmerID)
	}
	farmers, err := fetchAccountSummaries(dbCtx, "farmers", farmerIDs)
	if err != nil {
		log.Println("Database error resolving farmers:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to resolve farmers")
		return
	}

	views := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		view := gin.H{"order": order}
		if summary, ok := farmers[order.FarmerID]; ok {
			view["farmer"] = summary
		}
		views = append(views, view)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": views})
}
