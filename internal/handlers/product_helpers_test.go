package handlers

import (
	"encoding/json"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestNormalizeProductDocumentCoercesLegacyShapes(t *testing.T) {
	product, err := normalizeProductDocument(bson.M{
		"name":     "Test",
		"price":    100.0,
		"discount": 20.0,
		"stock":    int32(5),
		"category": "Jackets",
	})
	if err != nil {
		t.Fatalf("normalizeProductDocument returned error: %v", err)
	}
	if len(product.Category) != 1 || product.Category[0] != "Jackets" {
		t.Fatalf("expected string category promoted to list, got %v", product.Category)
	}
	if product.Stock != 5 {
		t.Fatalf("expected stock 5, got %d", product.Stock)
	}
	if !product.InStock {
		t.Fatal("expected inStock true")
	}
	if product.FinalPrice != 80 {
		t.Fatalf("expected finalPrice 80, got %v", product.FinalPrice)
	}
}

func TestNormalizeProductDocumentDefaultsMissingFields(t *testing.T) {
	product, err := normalizeProductDocument(bson.M{
		"name":     "Bare",
		"price":    10.0,
		"category": []string{"Misc"},
	})
	if err != nil {
		t.Fatalf("normalizeProductDocument returned error: %v", err)
	}
	if product.Stock != 0 || product.InStock {
		t.Fatalf("expected zero stock and inStock=false, got stock=%d inStock=%v", product.Stock, product.InStock)
	}
	if product.FinalPrice != 10 {
		t.Fatalf("expected finalPrice equal to price, got %v", product.FinalPrice)
	}
}

func TestProductJSONIncludesComputedFields(t *testing.T) {
	product, err := normalizeProductDocument(bson.M{
		"name":     "Test",
		"price":    120.0,
		"discount": 50.0,
		"stock":    10,
		"category": []string{"Shoes"},
	})
	if err != nil {
		t.Fatalf("normalizeProductDocument returned error: %v", err)
	}

	body, err := json.Marshal(product)
	if err != nil {
		t.Fatalf("json marshal failed: %v", err)
	}

	jsonBody := string(body)
	if !strings.Contains(jsonBody, "\"finalPrice\":60") {
		t.Fatalf("expected finalPrice in response json, got %s", jsonBody)
	}
	if !strings.Contains(jsonBody, "\"inStock\":true") {
		t.Fatalf("expected inStock=true in response json, got %s", jsonBody)
	}
}
