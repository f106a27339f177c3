package returns

import (
	"fmt"
	"math"
	"strings"
)

// LineItem is one returnable (product, quantity, price) tuple resolved from
// an order. LineRef is what the return API calls the "order item"; for
// orders without per-line identity it equals the order id.
type LineItem struct {
	ProductID ID      `json:"productId"`
	LineRef   ID      `json:"lineRef"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Shape names the encoding an order's line items were found in.
type Shape string

const (
	ShapeItems           Shape = "items"
	ShapeProducts        Shape = "products"
	ShapeScalarItems     Shape = "items_with_product_id"
	ShapeTopLevelProduct Shape = "product_id"
	ShapeEmbeddedProduct Shape = "product"
	ShapeFallbackScan    Shape = "fallback_scan"
	ShapeNone            Shape = "none"
)

type rawLine struct {
	productID ID
	lineRef   ID
	quantity  any
	name      string
	price     any
}

type shapeRule struct {
	shape  Shape
	detect func(order Order, orderID ID) []rawLine
}

// shapeRules is evaluated top to bottom; the first rule producing a line
// wins. Multi-line encodings come before single-field ones so that a
// purchased line is never dropped in favour of a top-level field.
var shapeRules = []shapeRule{
	{ShapeItems, detectItems},
	{ShapeProducts, detectProducts},
	{ShapeScalarItems, detectScalarItems},
	{ShapeTopLevelProduct, detectTopLevelProduct},
	{ShapeEmbeddedProduct, detectEmbeddedProduct},
	{ShapeFallbackScan, detectFallbackScan},
}

// fallbackFields is the probe order of the last-resort scan.
var fallbackFields = []string{"products", "product_id", "productId", "product", "item", "items"}

// ShapePriority lists the recognized shapes in evaluation order.
func ShapePriority() []Shape {
	out := make([]Shape, 0, len(shapeRules))
	for _, rule := range shapeRules {
		out = append(out, rule.shape)
	}
	return out
}

// NormalizeOrderLines extracts the returnable line items of an order. An
// order in no recognized shape yields an empty, non-nil slice.
func NormalizeOrderLines(order Order, catalog Catalog) []LineItem {
	lines, _ := ResolveOrderLines(order, catalog)
	return lines
}

// ResolveOrderLines is NormalizeOrderLines that also reports which shape
// produced the lines.
func ResolveOrderLines(order Order, catalog Catalog) ([]LineItem, Shape) {
	if order == nil {
		return []LineItem{}, ShapeNone
	}
	orderID := order.ID()
	for _, rule := range shapeRules {
		raw := rule.detect(order, orderID)
		if len(raw) == 0 {
			continue
		}
		lines := make([]LineItem, 0, len(raw))
		for _, r := range raw {
			lines = append(lines, resolveLine(r, catalog))
		}
		return lines, rule.shape
	}
	return []LineItem{}, ShapeNone
}

func resolveLine(r rawLine, catalog Catalog) LineItem {
	line := LineItem{
		ProductID: r.productID,
		LineRef:   r.lineRef,
		Quantity:  purchasedQuantity(r.quantity),
	}

	product, known := catalog.Lookup(r.productID)
	switch {
	case known && strings.TrimSpace(product.Name) != "":
		line.Name = product.Name
	case strings.TrimSpace(r.name) != "":
		line.Name = strings.TrimSpace(r.name)
	default:
		line.Name = fmt.Sprintf("Product %s", r.productID)
	}

	if known {
		line.UnitPrice = product.Price
	} else if price, ok := asNumber(r.price); ok {
		line.UnitPrice = price
	}
	if line.UnitPrice < 0 {
		line.UnitPrice = 0
	}
	return line
}

// purchasedQuantity never reports less than one unit.
func purchasedQuantity(v any) int {
	n, ok := asNumber(v)
	if !ok || n < 1 {
		return 1
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Floor(n))
}

/* =========================
   SHAPE DETECTORS
========================= */

func detectItems(order Order, orderID ID) []rawLine {
	items, ok := asSequence(order["items"])
	if !ok {
		return nil
	}
	var lines []rawLine
	for _, entry := range items {
		item, ok := asObject(entry)
		if !ok {
			continue
		}
		productID, ok := productRef(item)
		if !ok {
			continue
		}
		lineRef, ok := idFromValue(item["id"])
		if !ok {
			lineRef = orderID
		}
		lines = append(lines, rawLine{
			productID: productID,
			lineRef:   lineRef,
			quantity:  item["quantity"],
			name:      embeddedName(item),
			price:     item["price"],
		})
	}
	return lines
}

func detectProducts(order Order, orderID ID) []rawLine {
	products, ok := asSequence(order["products"])
	if !ok {
		return nil
	}
	var lines []rawLine
	for _, entry := range products {
		product, ok := asObject(entry)
		if !ok {
			continue
		}
		productID, ok := idFromValue(product["id"])
		if !ok {
			continue
		}
		lines = append(lines, rawLine{
			productID: productID,
			lineRef:   orderID,
			quantity:  product["quantity"],
			name:      embeddedName(product),
			price:     product["price"],
		})
	}
	return lines
}

func detectScalarItems(order Order, orderID ID) []rawLine {
	items, present := order["items"]
	if !present || items == nil {
		return nil
	}
	if _, isSeq := asSequence(items); isSeq {
		return nil
	}
	productID, ok := productRef(order)
	if !ok {
		return nil
	}
	return []rawLine{topLevelLine(order, orderID, productID)}
}

func detectTopLevelProduct(order Order, orderID ID) []rawLine {
	if _, ok := firstPresent(order, "items", "products"); ok {
		return nil
	}
	if _, ok := firstPresent(order, "quantity"); !ok {
		return nil
	}
	productID, ok := productRef(order)
	if !ok {
		return nil
	}
	return []rawLine{topLevelLine(order, orderID, productID)}
}

func detectEmbeddedProduct(order Order, orderID ID) []rawLine {
	product, ok := asObject(order["product"])
	if !ok {
		return nil
	}
	productID, ok := idFromValue(product["id"])
	if !ok {
		return nil
	}
	return []rawLine{objectLine(product, order, orderID, productID)}
}

func detectFallbackScan(order Order, orderID ID) []rawLine {
	for _, field := range fallbackFields {
		value, ok := order[field]
		if !ok || value == nil {
			continue
		}
		if seq, ok := asSequence(value); ok {
			var lines []rawLine
			for _, entry := range seq {
				obj, ok := asObject(entry)
				if !ok {
					continue
				}
				if productID, ok := productLikeID(obj); ok {
					lines = append(lines, objectLine(obj, order, orderID, productID))
				}
			}
			if len(lines) > 0 {
				return lines
			}
			continue
		}
		if obj, ok := asObject(value); ok {
			if productID, ok := productLikeID(obj); ok {
				return []rawLine{objectLine(obj, order, orderID, productID)}
			}
			continue
		}
		if productID, ok := numericID(value); ok {
			return []rawLine{topLevelLine(order, orderID, productID)}
		}
	}
	return nil
}

/* =========================
   FIELD HELPERS
========================= */

func productRef(obj map[string]any) (ID, bool) {
	for _, key := range []string{"product_id", "productId"} {
		if id, ok := idFromValue(obj[key]); ok {
			return id, true
		}
	}
	return "", false
}

func productLikeID(obj map[string]any) (ID, bool) {
	if id, ok := productRef(obj); ok {
		return id, true
	}
	return idFromValue(obj["id"])
}

func embeddedName(obj map[string]any) string {
	for _, key := range []string{"name", "product_name", "productName"} {
		if name, ok := obj[key].(string); ok && strings.TrimSpace(name) != "" {
			return name
		}
	}
	return ""
}

// topLevelLine builds a single line from fields stored on the order itself.
// Top-level "price" is the order total in these encodings, so only an
// explicit unit price is taken.
func topLevelLine(order Order, orderID, productID ID) rawLine {
	price, _ := firstPresent(order, "unit_price", "unitPrice")
	return rawLine{
		productID: productID,
		lineRef:   orderID,
		quantity:  order["quantity"],
		name:      productNameField(order),
		price:     price,
	}
}

func objectLine(obj map[string]any, order Order, orderID, productID ID) rawLine {
	quantity, ok := firstPresent(obj, "quantity")
	if !ok {
		quantity = order["quantity"]
	}
	return rawLine{
		productID: productID,
		lineRef:   orderID,
		quantity:  quantity,
		name:      embeddedName(obj),
		price:     obj["price"],
	}
}

func productNameField(order Order) string {
	for _, key := range []string{"product_name", "productName"} {
		if name, ok := order[key].(string); ok && strings.TrimSpace(name) != "" {
			return name
		}
	}
	return ""
}
