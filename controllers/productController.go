package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nammakadai/namma-kadai-api/initializers"
	"github.com/nammakadai/namma-kadai-api/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

// getAWSUploader returns a configured S3 uploader
func getAWSUploader(ctx context.Context) (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// uploadImage stores one uploaded file in the S3 bucket and returns its public
// URL. The stored object key is random so uploads never overwrite each other.
func uploadImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	uploader, err := getAWSUploader(ctx)
	if err != nil {
		return "", err
	}

	f, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("error opening upload %s: %w", file.Filename, err)
	}
	defer f.Close()

	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		bucket = "namma-kadai"
	}

	key := uuid.NewString() + filepath.Ext(file.Filename)
	result, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading %s: %w", file.Filename, err)
	}

	return result.Location, nil
}

// farmerExists validates an owning-farmer reference against the farmers store.
func farmerExists(ctx context.Context, farmerID primitive.ObjectID) (bool, error) {
	err := initializers.GetCollection("farmers").
		FindOne(ctx, bson.M{"_id": farmerID}, options.FindOne().SetProjection(bson.M{"_id": 1})).
		Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateProduct adds a product to the owning farmer's catalog. Field names
// (productName, rate, kg) match what the web client submits.
func CreateProduct(ctx *gin.Context) {
	farmerID, err := primitive.ObjectIDFromHex(ctx.PostForm("farmerId"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid farmerId", err)
		return
	}

	name := ctx.PostForm("productName")
	if name == "" {
		respondWithError(ctx, http.StatusBadRequest, "Missing productName", nil)
		return
	}

	price, err := strconv.ParseFloat(ctx.PostForm("rate"), 64)
	if err != nil || price < 0 {
		respondWithError(ctx, http.StatusBadRequest, "rate must be a non-negative number", err)
		return
	}

	stock, err := strconv.ParseFloat(ctx.PostForm("kg"), 64)
	if err != nil || stock < 0 {
		respondWithError(ctx, http.StatusBadRequest, "kg must be a non-negative number", err)
		return
	}

	dbCtx, cancel := dbContext(ctx)
	defer cancel()

	exists, err := farmerExists(dbCtx, farmerID)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to validate farmer", err)
		return
	}
	if !exists {
		respondWithError(ctx, http.StatusNotFound, "Farmer not found", nil)
		return
	}

	now := time.Now()
	product := models.Product{
		Name:      name,
		Price:     price,
		InStock:   stock,
		FarmerID:  farmerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if file, err := ctx.FormFile("photo"); err == nil {
		url, uploadErr := uploadImage(dbCtx, file)
		if uploadErr != nil {
			log.Println("Product image upload error:", uploadErr)
			respondWithError(ctx, http.StatusInternalServerError, "Failed to upload product image", uploadErr)
			return
		}
		product.ImageUrl = url
	}

	result, err := initializers.GetCollection("products").InsertOne(dbCtx, product)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create product", err)
		return
	}
	product.ID = result.InsertedID.(primitive.ObjectID)

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Product added successfully",
		"product": product,
	})
}

// GetProducts lists the catalog, optionally scoped to one farmer with
// ?farmerId=. The unscoped listing is a full scan in insertion order.
func GetProducts(ctx *gin.Context) {
	filter := bson.M{}
	if farmerId := ctx.Query("farmerId"); farmerId != "" {
		farmerID, err := primitive.ObjectIDFromHex(farmerId)
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid farmerId", err)
			return
		}
		filter["farmerId"] = farmerID
	}

	dbCtx, cancel := dbContext(ctx)
	defer cancel()

	cursor, err := initializers.GetCollection("products").Find(dbCtx, filter)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", err)
		return
	}
	defer cursor.Close(dbCtx)

	products := []models.Product{}
	if err := cursor.All(dbCtx, &products); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to decode products", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

// UpdateProduct replaces only the supplied fields; a new photo overwrites the
// stored image URL.
func UpdateProduct(ctx *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	patch := bson.M{}
	if name := ctx.PostForm("productName"); name != "" {
		patch["name"] = name
	}
	if rate := ctx.PostForm("rate"); rate != "" {
		price, err := strconv.ParseFloat(rate, 64)
		if err != nil || price < 0 {
			respondWithError(ctx, http.StatusBadRequest, "rate must be a non-negative number", err)
			return
		}
		patch["price"] = price
	}
	if kg := ctx.PostForm("kg"); kg != "" {
		stock, err := strconv.ParseFloat(kg, 64)
		if err != nil || stock < 0 {
			respondWithError(ctx, http.StatusBadRequest, "kg must be a non-negative number", err)
			return
		}
		patch["inStock"] = stock
	}

	dbCtx, cancel := dbContext(ctx)
	defer cancel()

	if file, err := ctx.FormFile("photo"); err == nil {
		url, uploadErr := uploadImage(dbCtx, file)
		if uploadErr != nil {
			log.Println("Product image upload error:", uploadErr)
			respondWithError(ctx, http.StatusInternalServerError, "Failed to upload product image", uploadErr)
			return
		}
		patch["imageUrl"] = url
	}

	patch["updatedAt"] = time.Now()

	var product models.Product
	err = initializers.GetCollection("products").FindOneAndUpdate(
		dbCtx,
		bson.M{"_id": productID},
		bson.M{"$set": patch},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)

	if errors.Is(err, mongo.ErrNoDocuments) {
		respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		return
	}
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update product", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct removes a product outright; there is no soft delete.
func DeleteProduct(ctx *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	dbCtx, cancel := dbContext(ctx)
	defer cancel()

	result, err := initializers.GetCollection("products").DeleteOne(dbCtx, bson.M{"_id": productID})
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete product", err)
		return
	}
	if result.DeletedCount == 0 {
		respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		return
	}

	ctx.Status(http.StatusNoContent)
}
