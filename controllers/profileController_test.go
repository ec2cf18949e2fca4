package controllers

import (
	"errors"
	"testing"

	"github.com/nammakadai/namma-kadai-api/models"
	"go.mongodb.org/mongo-driver/mongo"
)

func duplicateKeyError(index string) error {
	return mongo.CommandError{
		Code: 11000,
		Message: "E11000 duplicate key error collection: nammakadai.customers index: " +
			index + ` dup key: { : "x" }`,
	}
}

func TestMapDuplicateKeyError(t *testing.T) {
	if err := mapDuplicateKeyError(duplicateKeyError("mobile_1")); !errors.Is(err, models.ErrDuplicateMobile) {
		t.Fatalf("mobile index violation should map to ErrDuplicateMobile, got %v", err)
	}
	if err := mapDuplicateKeyError(duplicateKeyError("email_1")); !errors.Is(err, models.ErrDuplicateEmail) {
		t.Fatalf("email index violation should map to ErrDuplicateEmail, got %v", err)
	}
}

func TestMapDuplicateKeyErrorPassesOthersThrough(t *testing.T) {
	if err := mapDuplicateKeyError(nil); err != nil {
		t.Fatalf("nil should stay nil, got %v", err)
	}

	plain := errors.New("connection reset")
	if err := mapDuplicateKeyError(plain); err != plain {
		t.Fatalf("non-duplicate errors should pass through, got %v", err)
	}

	other := duplicateKeyError("sku_1")
	if err := mapDuplicateKeyError(other); errors.Is(err, models.ErrDuplicateMobile) || errors.Is(err, models.ErrDuplicateEmail) {
		t.Fatalf("unknown index violation should pass through, got %v", err)
	}
}
