package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nammakadai/namma-kadai-api/initializers"
	"github.com/nammakadai/namma-kadai-api/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mapDuplicateKeyError converts a unique-index violation into the matching
// duplicate-identity sentinel, so a profile patch colliding with another
// account reports the field the same way signup does. Mongo names its
// default indexes "<field>_1", which is what the error message carries.
func mapDuplicateKeyError(err error) error {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return err
	}
	if strings.Contains(err.Error(), "mobile") {
		return models.ErrDuplicateMobile
	}
	if strings.Contains(err.Error(), "email") {
		return models.ErrDuplicateEmail
	}
	return err
}

// buildProfilePatch turns the supplied multipart form fields into a $set
// document. Only fields present in the request are written; the password is
// rehashed only when a new one was sent.
func buildProfilePatch(ctx *gin.Context) (bson.M, error) {
	patch := bson.M{}

	for _, field := range []string{"name", "mobile", "email", "address", "city", "state", "pincode"} {
		if value := ctx.PostForm(field); value != "" {
			patch[field] = value
		}
	}

	if mobile, ok := patch["mobile"]; ok {
		if !mobileRegex.MatchString(mobile.(string)) {
			return nil, errors.New("invalid mobile number")
		}
	}
	if pincode, ok := patch["pincode"]; ok {
		if !pincodeRegex.MatchString(pincode.(string)) {
			return nil, errors.New("invalid pincode")
		}
	}

	if password := ctx.PostForm("password"); password != "" {
		hashed, err := hashPassword(password)
		if err != nil {
			return nil, err
		}
		patch["password"] = hashed
	}

	if file, err := ctx.FormFile("profilePhoto"); err == nil {
		dbCtx, cancel := dbContext(ctx)
		defer cancel()
		url, uploadErr := uploadImage(dbCtx, file)
		if uploadErr != nil {
			return nil, uploadErr
		}
		patch["profilePhoto"] = url
	}

	patch["updatedAt"] = time.Now()
	return patch, nil
}

func getProfileByMobile(ctx *gin.Context, collection string, out any) {
	mobile := ctx.Param("mobile")
	if !mobileRegex.MatchString(mobile) {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid mobile number")
		return
	}

	dbCtx, cancel := dbContext(ctx)
	defer cancel()

	err := initializers.GetCollection(collection).FindOne(dbCtx, bson.M{"mobile": mobile}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		sendErrorResponse(ctx, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		log.Println("Database error fetching profile:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	ctx.JSON(http.StatusOK, out)
}

func updateProfileByMobile(ctx *gin.Context, collection string, out any) {
	mobile := ctx.Param("mobile")
	if !mobileRegex.MatchString(mobile) {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid mobile number")
		return
	}

	patch, err := buildProfilePatch(ctx)
	if err != nil {
		log.Println("Profile patch error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	dbCtx, cancel := dbContext(ctx)
	defer cancel()

	result := initializers.GetCollection(collection).FindOneAndUpdate(
		dbCtx,
		bson.M{"mobile": mobile},
		bson.M{"$set": patch},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	if err := result.Decode(out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			sendErrorResponse(ctx, http.StatusNotFound, "profile not found")
			return
		}
		if mapped := mapDuplicateKeyError(err); errors.Is(mapped, models.ErrDuplicateMobile) || errors.Is(mapped, models.ErrDuplicateEmail) {
			sendErrorResponse(ctx, http.StatusBadRequest, mapped.Error())
			return
		}
		log.Println("Database error updating profile:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	ctx.JSON(http.StatusOK, out)
}

func GetFarmerProfile(ctx *gin.Context) {
	getProfileByMobile(ctx, "farmers", &models.Farmer{})
}

func UpdateFarmerProfile(ctx *gin.Context) {
	updateProfileByMobile(ctx, "farmers", &models.Farmer{})
}

func GetCustomerProfile(ctx *gin.Context) {
	getProfileByMobile(ctx, "customers", &models.Customer{})
}

func UpdateCustomerProfile(ctx *gin.Context) {
	updateProfileByMobile(ctx, "customers", &models.Customer{})
}
