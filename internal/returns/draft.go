package returns

import "github.com/shopspring/decimal"

// Customer identifies who a return is raised for.
type Customer struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// ReturnSelection is the submittable return draft.
type ReturnSelection struct {
	ID           string          `json:"id,omitempty"`
	CustomerID   ID              `json:"customerId"`
	CustomerName string          `json:"customerName,omitempty"`
	OrderID      ID              `json:"orderId"`
	LineRef      ID              `json:"lineRef"`
	ProductID    ID              `json:"productId"`
	ProductName  string          `json:"productName"`
	Quantity     int             `json:"quantity"`
	UnitPrice    float64         `json:"unitPrice"`
	RefundAmount decimal.Decimal `json:"refundAmount"`
	Reason       string          `json:"reason"`
}

// BuildReturnDraft assembles a draft from already validated selections.
// It does not check its inputs; callers gate submission on a complete
// selection.
func BuildReturnDraft(customer Customer, order Order, line LineItem, reason string, quantity int, refundAmount decimal.Decimal) ReturnSelection {
	return ReturnSelection{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		OrderID:      order.ID(),
		LineRef:      line.LineRef,
		ProductID:    line.ProductID,
		ProductName:  line.Name,
		Quantity:     quantity,
		UnitPrice:    line.UnitPrice,
		RefundAmount: refundAmount,
		Reason:       reason,
	}
}
