package returns

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ID is the canonical textual form of an identifier. Numeric ids are
// formatted without a fractional part so that 7, int32(7) and 7.0 all
// compare equal.
type ID string

func (id ID) String() string { return string(id) }

// IsZero reports whether the identifier is empty.
func (id ID) IsZero() bool { return id == "" }

// IntID builds an ID from an integer.
func IntID(v int64) ID { return ID(strconv.FormatInt(v, 10)) }

// ParseID reads an identifier from a decoded JSON or BSON value.
func ParseID(v any) (ID, bool) { return idFromValue(v) }

// idFromValue accepts numbers, non-blank strings and ObjectIDs.
func idFromValue(v any) (ID, bool) {
	if id, ok := numericID(v); ok {
		return id, true
	}
	switch typed := v.(type) {
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return "", false
		}
		return ID(trimmed), true
	case primitive.ObjectID:
		if typed.IsZero() {
			return "", false
		}
		return ID(typed.Hex()), true
	}
	return "", false
}

// numericID only accepts values that are numbers on the wire.
func numericID(v any) (ID, bool) {
	n, ok := asInteger(v)
	if !ok {
		return "", false
	}
	return IntID(n), true
}

func asInteger(v any) (int64, bool) {
	switch typed := v.(type) {
	case int:
		return int64(typed), true
	case int32:
		return int64(typed), true
	case int64:
		return typed, true
	case float32:
		return integralFloat(float64(typed))
	case float64:
		return integralFloat(typed)
	case json.Number:
		if n, err := typed.Int64(); err == nil {
			return n, true
		}
		if f, err := typed.Float64(); err == nil {
			return integralFloat(f)
		}
	}
	return 0, false
}

// integralFloat rejects fractions and anything outside int64, so an oversized
// id cannot wrap onto another one.
func integralFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < -math.MaxInt64-1 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// asNumber is lenient: legacy documents store prices and quantities as
// strings as often as numbers.
func asNumber(v any) (float64, bool) {
	switch typed := v.(type) {
	case int:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case float32:
		return float64(typed), true
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return 0, false
		}
		return typed, true
	case json.Number:
		f, err := typed.Float64()
		return f, err == nil
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(typed.String(), 64)
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
