package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"returnsconsole/internal/database"
	"returnsconsole/internal/returns"
)

/* =========================
   REQUEST DTOs
========================= */

// Identifiers arrive as numbers from the legacy console and as strings from
// the newer one, so they are bound loosely and parsed afterwards.
type quoteRequest struct {
	OrderID   any `json:"orderId" binding:"required"`
	ProductID any `json:"productId" binding:"required"`
	Quantity  any `json:"quantity"`
}

type draftRequest struct {
	CustomerID any    `json:"customerId" binding:"required"`
	OrderID    any    `json:"orderId" binding:"required"`
	ProductID  any    `json:"productId" binding:"required"`
	Quantity   any    `json:"quantity"`
	Reason     string `json:"reason" binding:"required,notblank,max=500"`
}

/* =========================
   QUOTE
========================= */

// QuoteReturn clamps the requested quantity and prices the refund. It never
// rejects a quantity; out of range values are clamped.
func QuoteReturn(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/returns/quote"
		defer handlePanic(c, route)

		var req quoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		orderID, okOrder := returns.ParseID(req.OrderID)
		productID, okProduct := returns.ParseID(req.ProductID)
		if !okOrder || !okProduct {
			respondWithError(c, http.StatusBadRequest, route, "invalid orderId or productId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), deps.timeout())
		defer cancel()

		order, err := deps.Store.Order(ctx, orderID)
		if errors.Is(err, database.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "order could not be fetched")
			return
		}
		catalog, err := deps.Store.Catalog(ctx)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "products could not be fetched")
			return
		}

		line, ok := returns.SelectProduct(returns.NormalizeOrderLines(order, catalog), productID)
		if !ok {
			respondWithError(c, http.StatusUnprocessableEntity, route, "product is not part of this order")
			return
		}

		quote := returns.SetQuantity(line, returns.ParseQuantity(req.Quantity))
		c.JSON(http.StatusOK, gin.H{
			"lineRef":       line.LineRef,
			"maxQuantity":   line.Quantity,
			"unitPrice":     line.UnitPrice,
			"quantity":      quote.Quantity,
			"refundAmount":  quote.RefundAmount,
			"refundDisplay": returns.FormatAmount(quote.RefundAmount),
			"currency":      deps.Currency,
		})
	}
}

/* =========================
   DRAFT
========================= */

// DraftReturn is the form layer in front of the draft assembler: it refuses
// incomplete selections and replays the complete one through a workflow.
// Nothing is persisted; the caller submits the draft.
func DraftReturn(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/returns/draft"
		defer handlePanic(c, route)

		var req draftRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			deps.Metrics.DraftsDenied.WithLabelValues("invalid_body").Inc()
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		customerID, okCustomer := returns.ParseID(req.CustomerID)
		orderID, okOrder := returns.ParseID(req.OrderID)
		productID, okProduct := returns.ParseID(req.ProductID)
		if !okCustomer || !okOrder || !okProduct {
			deps.Metrics.DraftsDenied.WithLabelValues("invalid_id").Inc()
			respondWithError(c, http.StatusBadRequest, route, "invalid customerId, orderId or productId")
			return
		}
		quantity := returns.ParseQuantity(req.Quantity)
		if quantity < 1 {
			deps.Metrics.DraftsDenied.WithLabelValues("invalid_quantity").Inc()
			respondWithError(c, http.StatusBadRequest, route, "quantity must be at least 1")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), deps.timeout())
		defer cancel()

		customer, err := deps.Store.Customer(ctx, customerID)
		if errors.Is(err, database.ErrNotFound) {
			deps.Metrics.DraftsDenied.WithLabelValues("unknown_customer").Inc()
			respondWithError(c, http.StatusNotFound, route, "customer not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "customer could not be fetched")
			return
		}
		customer.ID = customerID

		orders, err := deps.Store.Orders(ctx)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "orders could not be fetched")
			return
		}
		catalog, err := deps.Store.Catalog(ctx)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "products could not be fetched")
			return
		}

		workflow := returns.NewWorkflow(orders, catalog)
		steps := []returns.Action{
			returns.SelectCustomerAction{Customer: customer},
			returns.SelectOrderAction{OrderID: orderID},
			returns.SelectProductAction{ProductID: productID},
			returns.SetQuantityAction{Requested: quantity},
			returns.SetReasonAction{Reason: req.Reason},
		}
		for _, step := range steps {
			if err := workflow.Dispatch(step); err != nil {
				respondWorkflowError(c, deps, route, err)
				return
			}
		}

		draft, err := workflow.Draft()
		if err != nil {
			respondWorkflowError(c, deps, route, err)
			return
		}
		draft.ID = uuid.NewString()
		deps.Metrics.DraftsBuilt.Inc()

		logrus.WithFields(logrus.Fields{
			"route":    route,
			"draft":    draft.ID,
			"customer": draft.CustomerID,
			"order":    draft.OrderID,
			"lineRef":  draft.LineRef,
			"quantity": draft.Quantity,
		}).Info("return draft assembled")

		c.JSON(http.StatusOK, gin.H{
			"draft":         draft,
			"refundDisplay": returns.FormatAmount(draft.RefundAmount),
			"currency":      deps.Currency,
		})
	}
}

func respondWorkflowError(c *gin.Context, deps Deps, route string, err error) {
	switch {
	case errors.Is(err, returns.ErrUnknownOrder):
		deps.Metrics.DraftsDenied.WithLabelValues("unknown_order").Inc()
		respondWithError(c, http.StatusNotFound, route, "order not found for this customer")
	case errors.Is(err, returns.ErrUnknownProduct):
		deps.Metrics.DraftsDenied.WithLabelValues("unknown_product").Inc()
		respondWithError(c, http.StatusUnprocessableEntity, route, "product is not part of this order")
	default:
		deps.Metrics.DraftsDenied.WithLabelValues("incomplete").Inc()
		respondWithError(c, http.StatusBadRequest, route, err.Error())
	}
}
