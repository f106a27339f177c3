package returns

import "strings"

// FilterOrdersForCustomer returns the orders attributed to customerID, in
// input order. An order matches on a numeric customerId, a numeric
// customer_id, or a customer label such as "Customer #7". Orders that
// reference their customer in none of these ways are skipped.
func FilterOrdersForCustomer(orders []Order, customerID ID) []Order {
	out := make([]Order, 0)
	if customerID.IsZero() {
		return out
	}
	for _, order := range orders {
		if belongsToCustomer(order, customerID) {
			out = append(out, order)
		}
	}
	return out
}

func belongsToCustomer(order Order, customerID ID) bool {
	if id, ok := numericID(order["customerId"]); ok && id == customerID {
		return true
	}
	if label, ok := order["customer"].(string); ok && labelReferences(label, customerID) {
		return true
	}
	if id, ok := numericID(order["customer_id"]); ok && id == customerID {
		return true
	}
	return false
}

// labelReferences reports whether label mentions "#<id>" anywhere. A plain
// substring match, so "Customer #70" also references customer 7.
func labelReferences(label string, customerID ID) bool {
	return strings.Contains(label, "#"+string(customerID))
}
