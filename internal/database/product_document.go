package database

import (
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"returnsconsole/internal/models"
)

// normalizeProductDocument coerces the loosely typed fields older product
// documents were written with before decoding into models.Product.
func normalizeProductDocument(raw bson.M) (models.Product, error) {
	if val, ok := raw["price"]; ok {
		raw["price"] = coercePrice(val)
	}

	if val, ok := raw["isDeleted"]; ok {
		if s, isString := val.(string); isString {
			raw["isDeleted"] = s == "true"
		}
	}

	data, err := bson.Marshal(raw)
	if err != nil {
		return models.Product{}, err
	}

	var p models.Product
	if err := bson.Unmarshal(data, &p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// coercePrice maps the price encodings seen in product documents onto a
// float. Anything unreadable is 0.
func coercePrice(val interface{}) float64 {
	var parsed float64
	switch typed := val.(type) {
	case float64:
		parsed = typed
	case int32:
		parsed = float64(typed)
	case int64:
		parsed = float64(typed)
	case int:
		parsed = float64(typed)
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(typed.String(), 64)
		if err != nil {
			return 0
		}
		parsed = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0
		}
		parsed = f
	default:
		return 0
	}
	if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0
	}
	return parsed
}
