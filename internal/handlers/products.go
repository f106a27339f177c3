package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"returnsconsole/internal/returns"
)

/*
GET /api/products
- catalog snapshot used to resolve return lines
- pagination only when page or limit is given
*/
func GetProducts(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products"
		defer handlePanic(c, route)

		logrus.WithFields(logrus.Fields{
			"route":  route,
			"page":   c.Query("page"),
			"limit":  c.Query("limit"),
			"search": c.Query("search"),
		}).Debug("hit")

		ctx, cancel := context.WithTimeout(c.Request.Context(), deps.timeout())
		defer cancel()

		if err := ensureDBConnection(ctx, deps.Store); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		products, err := deps.Store.Products(ctx)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "products could not be fetched")
			return
		}

		if search := strings.ToLower(strings.TrimSpace(c.Query("search"))); search != "" {
			filtered := make([]returns.Product, 0, len(products))
			for _, p := range products {
				if strings.Contains(strings.ToLower(p.Name), search) || strings.Contains(strings.ToLower(p.NameEn), search) {
					filtered = append(filtered, p)
				}
			}
			products = filtered
		}

		pageStr, limitStr := c.Query("page"), c.Query("limit")
		if pageStr == "" && limitStr == "" {
			c.JSON(http.StatusOK, gin.H{"data": products})
			return
		}

		page, limit, err := parsePaginationParams(pageStr, limitStr)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		total := len(products)
		c.JSON(http.StatusOK, gin.H{
			"data": paginate(products, page, limit),
			"pagination": gin.H{
				"page":       page,
				"limit":      limit,
				"total":      total,
				"totalPages": (total + limit - 1) / limit,
			},
		})
	}
}
