package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/cache"
	"storefront/internal/models"
)

type productCreateRequest struct {
	Name        string                `json:"name" binding:"required"`
	Price       float64               `json:"price" binding:"required"`
	Discount    float64               `json:"discount"`
	Category    []string              `json:"category" binding:"required"`
	Sections    []string              `json:"sections"`
	Description string                `json:"description"`
	MainImage   string                `json:"mainImage"`
	Images      []string              `json:"images"`
	Colors      []models.ProductColor `json:"colors"`
	Sizes       []string              `json:"sizes"`
	Details     map[string]string     `json:"details"`
	Stock       int                   `json:"stock"`
	IsActive    *bool                 `json:"isActive"`
}

type productUpdateRequest struct {
	Name        *string                `json:"name"`
	Price       *float64               `json:"price"`
	Discount    *float64               `json:"discount"`
	Category    *[]string              `json:"category"`
	Sections    *[]string              `json:"sections"`
	Description *string                `json:"description"`
	MainImage   *string                `json:"mainImage"`
	Images      *[]string              `json:"images"`
	Colors      *[]models.ProductColor `json:"colors"`
	Sizes       *[]string              `json:"sizes"`
	Details     *map[string]string     `json:"details"`
	Stock       *int                   `json:"stock"`
	IsActive    *bool                  `json:"isActive"`
}

func normalizeNames(values []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, v := range values {
		name := strings.TrimSpace(v)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func invalidateProductCache(ctx context.Context, rdb *cache.Redis) {
	if err := rdb.Del(ctx, productListCacheKey); err != nil {
		log.Println("[PRODUCT] [ERROR] cache invalidation failed:", err)
	}
}

func GetAllProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		filter := bson.M{
			"isDeleted": bson.M{"$ne": true},
		}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["name"] = bson.M{"$regex": search, "$options": "i"}
		}

		findOptions := options.Find().
			SetSkip((page - 1) * limit).
			SetLimit(limit).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("products").CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		cursor, err := db.Collection("products").Find(ctx, filter, findOptions)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		products, err := decodeProducts(ctx, cursor)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data": products,
			"pagination": gin.H{
				"page":  page,
				"limit": limit,
				"total": total,
			},
		})
	}
}

func CreateProduct(db *mongo.Database, rdb *cache.Redis) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/products"
		defer handlePanic(c, route)

		var req productCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if req.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be greater than 0"})
			return
		}
		if req.Discount < 0 || req.Discount > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "discount must be between 0 and 100"})
			return
		}
		if req.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stock cannot be negative"})
			return
		}

		categories := normalizeNames(req.Category)
		if len(categories) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category required"})
			return
		}

		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}

		product := models.Product{
			Name:          strings.TrimSpace(req.Name),
			Price:         req.Price,
			OriginalPrice: req.Price,
			Discount:      req.Discount,
			Category:      categories,
			Sections:      normalizeNames(req.Sections),
			Description:   strings.TrimSpace(req.Description),
			MainImage:     strings.TrimSpace(req.MainImage),
			Images:        req.Images,
			Colors:        req.Colors,
			Sizes:         normalizeNames(req.Sizes),
			Details:       req.Details,
			Stock:         req.Stock,
			IsActive:      isActive,
			CreatedAt:     time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			product.ID = id
		}

		invalidateProductCache(ctx, rdb)

		log.Println("[PRODUCT] [INFO] product created:", product.ID.Hex())
		c.JSON(http.StatusCreated, product)
	}
}

func UpdateProduct(db *mongo.Database, rdb *cache.Redis) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/products/:id"
		defer handlePanic(c, route)

		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req productUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		set := bson.M{}
		if req.Name != nil {
			set["name"] = strings.TrimSpace(*req.Name)
		}
		if req.Price != nil {
			if *req.Price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price must be greater than 0"})
				return
			}
			set["price"] = *req.Price
		}
		if req.Discount != nil {
			if *req.Discount < 0 || *req.Discount > 100 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "discount must be between 0 and 100"})
				return
			}
			set["discount"] = *req.Discount
		}
		if req.Category != nil {
			categories := normalizeNames(*req.Category)
			if len(categories) == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "category required"})
				return
			}
			set["category"] = categories
		}
		if req.Sections != nil {
			set["sections"] = normalizeNames(*req.Sections)
		}
		if req.Description != nil {
			set["description"] = strings.TrimSpace(*req.Description)
		}
		if req.MainImage != nil {
			set["mainImage"] = strings.TrimSpace(*req.MainImage)
		}
		if req.Images != nil {
			set["images"] = *req.Images
		}
		if req.Colors != nil {
			set["colors"] = *req.Colors
		}
		if req.Sizes != nil {
			set["sizes"] = normalizeNames(*req.Sizes)
		}
		if req.Details != nil {
			set["details"] = *req.Details
		}
		if req.Stock != nil {
			if *req.Stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "stock cannot be negative"})
				return
			}
			set["stock"] = *req.Stock
		}
		if req.IsActive != nil {
			set["isActive"] = *req.IsActive
		}

		if len(set) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").UpdateOne(ctx,
			bson.M{"_id": productID, "isDeleted": bson.M{"$ne": true}},
			bson.M{"$set": set},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		invalidateProductCache(ctx, rdb)

		log.Println("[PRODUCT] [INFO] product updated:", productID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "product updated"})
	}
}

// DeleteProduct soft-deletes: orders keep referencing the product snapshot
// and the document stays queryable for history.
func DeleteProduct(db *mongo.Database, rdb *cache.Redis) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		now := time.Now()
		res, err := db.Collection("products").UpdateOne(ctx,
			bson.M{"_id": productID, "isDeleted": bson.M{"$ne": true}},
			bson.M{"$set": bson.M{
				"isDeleted": true,
				"isActive":  false,
				"deletedAt": now,
			}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		invalidateProductCache(ctx, rdb)

		log.Println("[PRODUCT] [INFO] product deleted:", productID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
