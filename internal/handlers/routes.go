package handlers

import "github.com/gin-gonic/gin"

// RegisterConsoleRoutes mounts the return console API on group.
func RegisterConsoleRoutes(group gin.IRoutes, deps Deps) {
	group.GET("/products", GetProducts(deps))
	group.GET("/customers/:id/orders", GetCustomerOrders(deps))
	group.GET("/orders/:id/lines", GetOrderLines(deps))
	group.POST("/returns/quote", QuoteReturn(deps))
	group.POST("/returns/draft", DraftReturn(deps))
}
