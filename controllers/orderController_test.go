package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nammakadai/namma-kadai-api/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeInserter stands in for the orders collection. failOn holds farmer ids
// whose group insert should fail.
type fakeInserter struct {
	failOn   map[primitive.ObjectID]bool
	inserted []models.Order
}

func (f *fakeInserter) InsertOne(ctx context.Context, document interface{},
	opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	order := document.(models.Order)
	if f.failOn[order.FarmerID] {
		return nil, errors.New("write failed")
	}
	f.inserted = append(f.inserted, order)
	return &mongo.InsertOneResult{InsertedID: primitive.NewObjectID()}, nil
}

func checkoutGroups(farmers ...primitive.ObjectID) []models.FarmerGroup {
	groups := make([]models.FarmerGroup, 0, len(farmers))
	for _, farmerID := range farmers {
		line := models.OrderProduct{
			ProductID: primitive.NewObjectID(),
			FarmerID:  farmerID,
			Name:      "Tomato",
			Quantity:  2,
			Price:     20,
		}
		groups = append(groups, models.FarmerGroup{
			FarmerID: farmerID,
			Products: []models.OrderProduct{line},
			Total:    40,
		})
	}
	return groups
}

func TestPersistOrderGroupsAllSucceed(t *testing.T) {
	customerID := primitive.NewObjectID()
	groups := checkoutGroups(primitive.NewObjectID(), primitive.NewObjectID())
	store := &fakeInserter{}
	now := time.Now()

	created, failed := persistOrderGroups(context.Background(), store, customerID, groups, "12 Main St", models.PaymentCOD, now)

	if len(failed) != 0 {
		t.Fatalf("want no failures, got %+v", failed)
	}
	if len(created) != 2 {
		t.Fatalf("want one order per farmer group, got %d", len(created))
	}
	for i, order := range created {
		if order.ID.IsZero() {
			t.Fatalf("order %d should carry the inserted id", i)
		}
		if order.FarmerID != groups[i].FarmerID {
			t.Fatalf("order %d addressed to wrong farmer", i)
		}
		if order.CustomerID != customerID || order.Status != models.OrderStatusPending {
			t.Fatalf("order %d has wrong customer or status: %+v", i, order)
		}
		if !order.CreatedAt.Equal(now) {
			t.Fatalf("order %d should carry the checkout timestamp", i)
		}
		if order.Total != models.LinesTotal(order.Products) {
			t.Fatalf("order %d total %v does not match its lines", i, order.Total)
		}
	}
}

func TestPersistOrderGroupsPartialFailure(t *testing.T) {
	customerID := primitive.NewObjectID()
	okFarmer := primitive.NewObjectID()
	badFarmer := primitive.NewObjectID()
	groups := checkoutGroups(okFarmer, badFarmer)
	store := &fakeInserter{failOn: map[primitive.ObjectID]bool{badFarmer: true}}

	created, failed := persistOrderGroups(context.Background(), store, customerID, groups, "12 Main St", models.PaymentDebit, time.Now())

	// The successful group stays persisted; there is no rollback.
	if len(created) != 1 || created[0].FarmerID != okFarmer {
		t.Fatalf("the successful group should remain, got %+v", created)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("exactly one document should have been written, got %d", len(store.inserted))
	}

	// The caller learns exactly which farmer group to retry.
	if len(failed) != 1 {
		t.Fatalf("want 1 failed group, got %d", len(failed))
	}
	if failed[0].FarmerID != badFarmer.Hex() {
		t.Fatalf("failure should name the farmer, got %+v", failed[0])
	}
	if failed[0].Reason == "" {
		t.Fatal("failure should carry a reason")
	}
}

// An empty cart is refused before the customer lookup or any write, so this
// runs the full handler without a database behind it.
func TestCreateOrderRejectsEmptyCart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)

	body := `{"customerId":"` + primitive.NewObjectID().Hex() +
		`","products":[],"address":"12 Main St","paymentMethod":"cod"}`
	ctx.Request = httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	ctx.Request.Header.Set("Content-Type", "application/json")

	CreateOrder(ctx)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), models.ErrEmptyCart.Error()) {
		t.Fatalf("response should name the empty cart, got %s", recorder.Body.String())
	}
}

func TestParseCheckoutLines(t *testing.T) {
	productID := primitive.NewObjectID()
	farmerID := primitive.NewObjectID()

	lines, err := parseCheckoutLines([]checkoutLine{
		{ProductID: productID.Hex(), FarmerID: farmerID.Hex(), Name: "Tomato", Quantity: 0.5, Price: 20},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || lines[0].ProductID != productID || lines[0].FarmerID != farmerID {
		t.Fatalf("parsed line should keep its references, got %+v", lines)
	}

	cases := []struct {
		name string
		line checkoutLine
	}{
		{"bad product id", checkoutLine{ProductID: "nope", FarmerID: farmerID.Hex(), Name: "Tomato", Quantity: 1, Price: 20}},
		{"bad farmer id", checkoutLine{ProductID: productID.Hex(), FarmerID: "nope", Name: "Tomato", Quantity: 1, Price: 20}},
		{"below minimum unit", checkoutLine{ProductID: productID.Hex(), FarmerID: farmerID.Hex(), Name: "Tomato", Quantity: 0.25, Price: 20}},
		{"negative price", checkoutLine{ProductID: productID.Hex(), FarmerID: farmerID.Hex(), Name: "Tomato", Quantity: 1, Price: -1}},
	}
	for _, tc := range cases {
		if _, err := parseCheckoutLines([]checkoutLine{tc.line}); err == nil {
			t.Fatalf("%s: want error, got none", tc.name)
		}
	}
}

func TestParseCheckoutLinesInvalidReference(t *testing.T) {
	_, err := parseCheckoutLines([]checkoutLine{
		{ProductID: "xyz", FarmerID: primitive.NewObjectID().Hex(), Name: "Tomato", Quantity: 1, Price: 20},
	})
	if !errors.Is(err, models.ErrInvalidReference) {
		t.Fatalf("want ErrInvalidReference, got %v", err)
	}
}
