package controllers

import (
	"context"
	"errors"
	"testing"

	"github.com/nammakadai/namma-kadai-api/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeAccountFinder stands in for an accounts collection. It answers the
// single-field lookups checkDuplicateIdentity issues and records which fields
// were queried.
type fakeAccountFinder struct {
	mobiles map[string]bool
	emails  map[string]bool
	queried []string
}

func (f *fakeAccountFinder) FindOne(ctx context.Context, filter interface{},
	opts ...*options.FindOneOptions) *mongo.SingleResult {
	query := filter.(bson.M)
	if mobile, ok := query["mobile"].(string); ok {
		f.queried = append(f.queried, "mobile")
		if f.mobiles[mobile] {
			return mongo.NewSingleResultFromDocument(bson.D{}, nil, nil)
		}
	}
	if email, ok := query["email"].(string); ok {
		f.queried = append(f.queried, "email")
		if f.emails[email] {
			return mongo.NewSingleResultFromDocument(bson.D{}, nil, nil)
		}
	}
	return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
}

func TestCheckDuplicateIdentityMobileWinsWhenBothCollide(t *testing.T) {
	accounts := &fakeAccountFinder{
		mobiles: map[string]bool{"9876543210": true},
		emails:  map[string]bool{"mani@example.com": true},
	}

	err := checkDuplicateIdentity(context.Background(), accounts, "9876543210", "mani@example.com")
	if !errors.Is(err, models.ErrDuplicateMobile) {
		t.Fatalf("want ErrDuplicateMobile when both fields collide, got %v", err)
	}
}

func TestCheckDuplicateIdentityEmailCollision(t *testing.T) {
	accounts := &fakeAccountFinder{
		emails: map[string]bool{"mani@example.com": true},
	}

	err := checkDuplicateIdentity(context.Background(), accounts, "9876543210", "mani@example.com")
	if !errors.Is(err, models.ErrDuplicateEmail) {
		t.Fatalf("want ErrDuplicateEmail, got %v", err)
	}
}

func TestCheckDuplicateIdentityNoCollision(t *testing.T) {
	accounts := &fakeAccountFinder{}

	if err := checkDuplicateIdentity(context.Background(), accounts, "9876543210", "mani@example.com"); err != nil {
		t.Fatalf("want no error for a fresh identity, got %v", err)
	}
}

func TestCheckDuplicateIdentitySkipsEmptyEmail(t *testing.T) {
	accounts := &fakeAccountFinder{}

	if err := checkDuplicateIdentity(context.Background(), accounts, "9876543210", ""); err != nil {
		t.Fatalf("want no error, got %v", err)
	}
	for _, field := range accounts.queried {
		if field == "email" {
			t.Fatal("email should not be queried when the signup carries none")
		}
	}
}
