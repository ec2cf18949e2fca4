package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusDelivered = "delivered"
)

const (
	PaymentCredit = "credit"
	PaymentDebit  = "debit"
	PaymentWallet = "wallet"
	PaymentCOD    = "cod"
)

func IsValidPaymentMethod(method string) bool {
	switch method {
	case PaymentCredit, PaymentDebit, PaymentWallet, PaymentCOD:
		return true
	}
	return false
}

// OrderProduct is a frozen copy of a cart line at order-creation time. The
// per-line FarmerID is redundant with the order-level one but kept so the
// history stays accurate even if catalog data changes later.
type OrderProduct struct {
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	FarmerID  primitive.ObjectID `json:"farmerId" bson:"farmerId"`
	Name      string             `json:"name" bson:"name"`
	Quantity  float64            `json:"quantity" bson:"quantity"`
	Price     float64            `json:"price" bson:"price"`
}

// Order is always scoped to exactly one farmer; a multi-farmer cart produces
// one order per farmer at checkout.
type Order struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CustomerID    primitive.ObjectID `json:"customerId" bson:"customerId"`
	FarmerID      primitive.ObjectID `json:"farmerId" bson:"farmerId"`
	Products      []OrderProduct     `json:"products" bson:"products"`
	Address       string             `json:"address" bson:"address"`
	PaymentMethod string             `json:"paymentMethod" bson:"paymentMethod"`
	Total         float64            `json:"total" bson:"total"`
	Status        string             `json:"status" bson:"status"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

// FarmerGroup is the slice of a cart addressed to a single farmer, with the
// total computed over that farmer's lines only.
type FarmerGroup struct {
	FarmerID primitive.ObjectID
	Products []OrderProduct
	Total    float64
}

// GroupByFarmer partitions checkout lines by their snapshotted farmer id.
// Groups come out in first-seen order and each keeps its lines in cart order,
// so the same cart always produces the same groups.
func GroupByFarmer(lines []OrderProduct) []FarmerGroup {
	var groups []FarmerGroup
	index := make(map[primitive.ObjectID]int)

	for _, line := range lines {
		i, ok := index[line.FarmerID]
		if !ok {
			i = len(groups)
			index[line.FarmerID] = i
			groups = append(groups, FarmerGroup{FarmerID: line.FarmerID})
		}
		groups[i].Products = append(groups[i].Products, line)
		groups[i].Total += line.Quantity * line.Price
	}

	return groups
}

// LinesTotal sums quantity times price over a set of order lines.
func LinesTotal(lines []OrderProduct) float64 {
	var total float64
	for _, line := range lines {
		total += line.Quantity * line.Price
	}
	return total
}
