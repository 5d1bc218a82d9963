package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

type testimonialCreateRequest struct {
	Author string `json:"author" binding:"required"`
	Text   string `json:"text" binding:"required"`
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
}

func GetTestimonials(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("testimonials").Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		testimonials := make([]models.Testimonial, 0)
		if err := cursor.All(ctx, &testimonials); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": testimonials})
	}
}

func CreateTestimonial(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req testimonialCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		testimonial := models.Testimonial{
			Author:    strings.TrimSpace(req.Author),
			Text:      strings.TrimSpace(req.Text),
			Rating:    req.Rating,
			CreatedAt: time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("testimonials").InsertOne(ctx, testimonial)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			testimonial.ID = id
		}

		c.JSON(http.StatusCreated, testimonial)
	}
}

func DeleteTestimonial(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		testimonialID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("testimonials").DeleteOne(ctx, bson.M{"_id": testimonialID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "testimonial not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "testimonial deleted"})
	}
}
