package returns

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order is a raw order document as returned by the order service. Its
// line items may be encoded in several historical shapes, so it is kept
// schemaless and only interpreted by the normalizer.
type Order map[string]any

// ID returns the order identifier, preferring "id" over Mongo's "_id".
func (o Order) ID() ID {
	for _, key := range []string{"id", "_id"} {
		if id, ok := idFromValue(o[key]); ok {
			return id
		}
	}
	return ""
}

// FindOrder returns the order with the given identifier.
func FindOrder(orders []Order, id ID) (Order, bool) {
	for _, order := range orders {
		if order.ID() == id {
			return order, true
		}
	}
	return nil, false
}

func asObject(v any) (map[string]any, bool) {
	switch typed := v.(type) {
	case Order:
		return typed, true
	case map[string]any:
		return typed, true
	case primitive.M:
		return typed, true
	case primitive.D:
		return typed.Map(), true
	}
	return nil, false
}

func asSequence(v any) ([]any, bool) {
	switch typed := v.(type) {
	case []any:
		return typed, true
	case primitive.A:
		return typed, true
	case []map[string]any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = item
		}
		return out, true
	case []primitive.M:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = item
		}
		return out, true
	}
	return nil, false
}

// firstPresent returns the first key whose value is set and not null.
func firstPresent(obj map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := obj[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}
