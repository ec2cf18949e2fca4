package initializers

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SyncDatabase creates the indexes the API relies on: unique mobile numbers and
// sparse-unique emails on both account collections, plus the secondary lookups
// used by the catalog and order queries.
func SyncDatabase() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	accountIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "mobile", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}

	for _, name := range []string{"farmers", "customers"} {
		if _, err := GetCollection(name).Indexes().CreateMany(ctx, accountIndexes); err != nil {
			log.Fatalf("Failed to create %s indexes: %v", name, err)
		}
	}

	if _, err := GetCollection("products").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "farmerId", Value: 1}},
	}); err != nil {
		log.Fatal("Failed to create product indexes:", err)
	}

	if _, err := GetCollection("orders").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "customerId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "farmerId", Value: 1}}},
	}); err != nil {
		log.Fatal("Failed to create order indexes:", err)
	}

	log.Println("Database indexes synced successfully.")
}
