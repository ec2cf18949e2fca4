package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/nammakadai/namma-kadai-api/initializers"
	"github.com/nammakadai/namma-kadai-api/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Standard response messages
	msgInvalidInput         = "invalid input"
	msgFailedToHashPassword = "failed to hash password"
	msgInternalServerError  = "Internal server error"

	dbTimeout = 10 * time.Second
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(id, role, mobile string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":     id,
		"role":   role,
		"mobile": mobile,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(time.Hour * 24 * 30).Unix(),
	})

	jwtSecret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(jwtSecret))
}

func dbContext(ctx *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request.Context(), dbTimeout)
}

type signupRequest struct {
	Name     string `form:"name" binding:"required"`
	Mobile   string `form:"mobile" binding:"required,mobile"`
	Email    string `form:"email" binding:"omitempty,email"`
	Password string `form:"password" binding:"required,min=6"`
	Address  string `form:"address" binding:"required"`
	City     string `form:"city" binding:"required"`
	State    string `form:"state" binding:"required"`
	Pincode  string `form:"pincode" binding:"required,pincode"`
}

type loginRequest struct {
	Mobile   string `json:"mobile" binding:"required,mobile"`
	Password string `json:"password" binding:"required"`
}

// identityFinder is the slice of *mongo.Collection the duplicate check needs.
type identityFinder interface {
	FindOne(ctx context.Context, filter interface{},
		opts ...*options.FindOneOptions) *mongo.SingleResult
}

// checkDuplicateIdentity reports a collision on mobile or email. The mobile is
// checked first so it is the one reported when both collide.
func checkDuplicateIdentity(ctx context.Context, collection identityFinder, mobile, email string) error {
	err := collection.FindOne(ctx, bson.M{"mobile": mobile}).Err()
	if err == nil {
		return models.ErrDuplicateMobile
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	if email == "" {
		return nil
	}
	err = collection.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		return models.ErrDuplicateEmail
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	return nil
}

func handleSignupFailure(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrDuplicateMobile), errors.Is(err, models.ErrDuplicateEmail):
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	default:
		log.Println("Database error during signup:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
	}
}

// FarmerSignup registers a farmer account from a multipart form, with an
// optional profile photo and optional farm coordinates.
func FarmerSignup(ctx *gin.Context) {
	var signupData signupRequest
	if err := ctx.ShouldBind(&signupData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	dbCtx, cancel := dbContext(ctx)
	defer cancel()

	farmers := initializers.GetCollection("farmers")
	if err := checkDuplicateIdentity(dbCtx, farmers, signupData.Mobile, signupData.Email); err != nil {
		handleSignupFailure(ctx, err)
		return
	}

	hashedPassword, err := hashPassword(signupData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	now := time.Now()
	farmer := models.Farmer{
		Name:      signupData.Name,
		Mobile:    signupData.Mobile,
		Email:     signupData.Email,
		Password:  hashedPassword,
		Address:   signupData.Address,
		City:      signupData.City,
		State:     signupData.State,
		Pincode:   signupData.Pincode,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if lat := ctx.PostForm("latitude"); lat != "" {
		if farmer.Latitude, err = strconv.ParseFloat(lat, 64); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "invalid latitude")
			return
		}
	}
	if lon := ctx.PostForm("longitude"); lon != "" {
		if farmer.Longitude, err = strconv.ParseFloat(lon, 64); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "invalid longitude")
			return
		}
	}

	if file, err := ctx.FormFile("profilePhoto"); err == nil {
		url, uploadErr := uploadImage(dbCtx, file)
		if uploadErr != nil {
			log.Println("Profile photo upload error:", uploadErr)
			sendErrorResponse(ctx, http.StatusInternalServerError, "failed to upload profile photo")
			return
		}
		farmer.ProfilePhoto = url
	}

	result, err := farmers.InsertOne(dbCtx, farmer)
	if err != nil {
		log.Println("Farmer creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	farmer.ID = result.InsertedID.(primitive.ObjectID)

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Farmer registered successfully",
		"farmer":  farmer,
	})
}

// CustomerSignup registers a customer account from a multipart form.
func CustomerSignup(ctx *gin.Context) {
	var signupData signupRequest
	if err := ctx.ShouldBind(&signupData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	dbCtx, cancel := dbContext(ctx)
	defer cancel()

	customers := initializers.GetCollection("customers")
	if err := checkDuplicateIdentity(dbCtx, customers, signupData.Mobile, signupData.Email); err != nil {
		handleSignupFailure(ctx, err)
		return
	}

	hashedPassword, err := hashPassword(signupData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	now := time.Now()
	customer := models.Customer{
		Name:      signupData.Name,
		Mobile:    signupData.Mobile,
		Email:     signupData.Email,
		Password:  hashedPassword,
		Address:   signupData.Address,
		City:      signupData.City,
		State:     signupData.State,
		Pincode:   signupData.Pincode,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if file, err := ctx.FormFile("profilePhoto"); err == nil {
		url, uploadErr := uploadImage(dbCtx, file)
		if uploadErr != nil {
			log.Println("Profile photo upload error:", uploadErr)
			sendErrorResponse(ctx, http.StatusInternalServerError, "failed to upload profile photo")
			return
		}
		customer.ProfilePhoto = url
	}

	result, err := customers.InsertOne(dbCtx, customer)
	if err != nil {
		log.Println("Customer creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	customer.ID = result.InsertedID.(primitive.ObjectID)

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message":  "Customer registered successfully",
		"customer": customer,
	})
}

// FarmerLogin authenticates a farmer by mobile number and password.
func FarmerLogin(ctx *gin.Context) {
	var loginData loginRequest
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	dbCtx, cancel := dbContext(ctx)
	defer cancel()

	var farmer models.Farmer
	err := initializers.GetCollection("farmers").FindOne(dbCtx, bson.M{"mobile": loginData.Mobile}).Decode(&farmer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		sendErrorResponse(ctx, http.StatusNotFound, "Farmer not found")
		return
	}
	if err != nil {
		log.Println("Database error during login:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if err := comparePasswords(farmer.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, models.ErrInvalidCredential.Error())
		return
	}

	token, err := generateJWT(farmer.ID.Hex(), "farmer", farmer.Mobile)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "failed to generate token")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"farmer": farmer, "token": token})
}

// CustomerLogin authenticates a customer by mobile number and password.
func CustomerLogin(ctx *gin.Context) {
	var loginData loginRequest
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	dbCtx, cancel := dbContext(ctx)
	defer cancel()

	var customer models.Customer
	err := initializers.GetCollection("customers").FindOne(dbCtx, bson.M{"mobile": loginData.Mobile}).Decode(&customer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		sendErrorResponse(ctx, http.StatusNotFound, "Customer not found")
		return
	}
	if err != nil {
		log.Println("Database error during login:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if err := comparePasswords(customer.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, models.ErrInvalidCredential.Error())
		return
	}

	token, err := generateJWT(customer.ID.Hex(), "customer", customer.Mobile)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "failed to generate token")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"customer": customer, "token": token})
}
