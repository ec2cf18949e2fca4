package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleProduct(name string, price float64) Product {
	return Product{
		ID:       primitive.NewObjectID(),
		Name:     name,
		Price:    price,
		InStock:  10,
		FarmerID: primitive.NewObjectID(),
	}
}

func TestCartAddNewAndExisting(t *testing.T) {
	tomato := sampleProduct("Tomato", 20)
	onion := sampleProduct("Onion", 30)

	var cart Cart
	cart.Add(tomato)
	cart.Add(onion)
	cart.Add(tomato)

	lines := cart.Lines()
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d", len(lines))
	}
	if lines[0].ProductID != tomato.ID || lines[0].Quantity != 2 {
		t.Fatalf("re-adding should bump quantity to 2, got %+v", lines[0])
	}
	if lines[1].ProductID != onion.ID || lines[1].Quantity != 1 {
		t.Fatalf("new line should start at quantity 1, got %+v", lines[1])
	}
	if lines[0].Name != "Tomato" || lines[0].Price != 20 || lines[0].FarmerID != tomato.FarmerID {
		t.Fatalf("line should snapshot the product, got %+v", lines[0])
	}
}

func TestCartSetQuantity(t *testing.T) {
	tomato := sampleProduct("Tomato", 20)

	var cart Cart
	cart.Add(tomato)

	if !cart.SetQuantity(tomato.ID, 2.5) {
		t.Fatal("valid quantity should be accepted")
	}
	if got := cart.Lines()[0].Quantity; got != 2.5 {
		t.Fatalf("want quantity 2.5, got %v", got)
	}

	// Below the minimum unit the line must stay untouched, not drop to zero.
	if cart.SetQuantity(tomato.ID, 0.25) {
		t.Fatal("quantity below minimum unit should be rejected")
	}
	if got := cart.Lines()[0].Quantity; got != 2.5 {
		t.Fatalf("rejected update must not change the line, got %v", got)
	}

	if cart.SetQuantity(primitive.NewObjectID(), 1) {
		t.Fatal("unknown product should be rejected")
	}
}

func TestCartRemove(t *testing.T) {
	tomato := sampleProduct("Tomato", 20)
	onion := sampleProduct("Onion", 30)

	var cart Cart
	cart.Add(tomato)
	cart.Add(onion)

	cart.Remove(tomato.ID)
	if cart.Len() != 1 || cart.Lines()[0].ProductID != onion.ID {
		t.Fatalf("remove should delete only the named line, got %+v", cart.Lines())
	}

	// Removing an absent product is a no-op.
	cart.Remove(tomato.ID)
	if cart.Len() != 1 {
		t.Fatalf("want 1 line, got %d", cart.Len())
	}
}

func TestCartSubtotal(t *testing.T) {
	tomato := sampleProduct("Tomato", 20)
	onion := sampleProduct("Onion", 30)

	var cart Cart
	if cart.Subtotal() != 0 {
		t.Fatalf("empty cart subtotal should be 0, got %v", cart.Subtotal())
	}

	cart.Add(tomato)
	cart.Add(onion)
	cart.SetQuantity(tomato.ID, 1.5)

	if got := cart.Subtotal(); got != 1.5*20+30 {
		t.Fatalf("want subtotal 60, got %v", got)
	}
}

func TestCartClear(t *testing.T) {
	var cart Cart
	cart.Add(sampleProduct("Tomato", 20))
	cart.Clear()

	if cart.Len() != 0 || cart.Subtotal() != 0 {
		t.Fatalf("cleared cart should be empty, got %d lines", cart.Len())
	}
}
