package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"returnsconsole/internal/database"
	"returnsconsole/internal/returns"
)

const noProductsMessage = "no products in this order"

/* =========================
   CUSTOMER ORDERS
========================= */

func GetCustomerOrders(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/customers/:id/orders"
		defer handlePanic(c, route)

		customerID, ok := returns.ParseID(c.Param("id"))
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid customer id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), deps.timeout())
		defer cancel()

		orders, err := deps.Store.Orders(ctx)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "orders could not be fetched")
			return
		}

		matched := returns.FilterOrdersForCustomer(orders, customerID)
		logrus.WithFields(logrus.Fields{
			"route":    route,
			"customer": customerID,
			"orders":   len(matched),
		}).Debug("orders filtered")

		c.JSON(http.StatusOK, gin.H{"data": matched, "count": len(matched)})
	}
}

/* =========================
   ORDER LINES
========================= */

func GetOrderLines(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/:id/lines"
		defer handlePanic(c, route)

		orderID, ok := returns.ParseID(c.Param("id"))
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid order id")
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

		lines, shape := returns.ResolveOrderLines(order, catalog)
		deps.Metrics.ObserveShape(shape)
		localizeLineNames(lines, catalog, c.Query("lang"))

		logrus.WithFields(logrus.Fields{
			"route": route,
			"order": orderID,
			"shape": shape,
			"lines": len(lines),
		}).Info("order lines resolved")

		resp := gin.H{
			"orderId": order.ID(),
			"shape":   shape,
			"lines":   lines,
		}
		if len(lines) == 0 {
			resp["message"] = noProductsMessage
		}
		c.JSON(http.StatusOK, resp)
	}
}

func localizeLineNames(lines []returns.LineItem, catalog returns.Catalog, lang string) {
	if lang == "" {
		return
	}
	for i := range lines {
		if name, ok := catalog.DisplayName(lines[i].ProductID, lang); ok && name != "" {
			lines[i].Name = name
		}
	}
}
