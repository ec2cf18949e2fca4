package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MinCartUnit is the smallest quantity (in kilograms) a cart line may hold.
const MinCartUnit = 0.5

// CartLine is a denormalized snapshot of a product at the time it was added,
// so later catalog edits do not change what the customer is buying.
type CartLine struct {
	ProductID primitive.ObjectID `json:"productId"`
	FarmerID  primitive.ObjectID `json:"farmerId"`
	Name      string             `json:"name"`
	Price     float64            `json:"price"`
	ImageUrl  string             `json:"imageUrl,omitempty"`
	Quantity  float64            `json:"quantity"`
}

// Cart holds at most one line per product, in the order products were first
// added. It is owned by the calling session and never persisted server-side.
type Cart struct {
	lines []CartLine
}

func (c *Cart) find(productID primitive.ObjectID) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add puts a product into the cart with quantity 1, or bumps the existing
// line's quantity by 1 if the product is already present.
func (c *Cart) Add(product Product) {
	if i := c.find(product.ID); i >= 0 {
		c.lines[i].Quantity += 1
		return
	}
	c.lines = append(c.lines, CartLine{
		ProductID: product.ID,
		FarmerID:  product.FarmerID,
		Name:      product.Name,
		Price:     product.Price,
		ImageUrl:  product.ImageUrl,
		Quantity:  1,
	})
}

// SetQuantity replaces a line's quantity. Quantities below MinCartUnit are
// rejected and the line is left untouched; removing a line is only done
// through Remove. Returns false when nothing changed.
func (c *Cart) SetQuantity(productID primitive.ObjectID, qty float64) bool {
	if qty < MinCartUnit {
		return false
	}
	i := c.find(productID)
	if i < 0 {
		return false
	}
	c.lines[i].Quantity = qty
	return true
}

// Remove deletes a line unconditionally.
func (c *Cart) Remove(productID primitive.ObjectID) {
	if i := c.find(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// Subtotal sums quantity times snapshotted price over all lines.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Quantity * line.Price
	}
	return total
}

// Lines returns a copy of the cart's lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Clear empties the cart. Callers must only invoke it after the server has
// acknowledged order creation, so a failed checkout never loses items.
func (c *Cart) Clear() {
	c.lines = nil
}
