package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pizzeria/internal/services"
)

type placeOrderRequest struct {
	Email  string `json:"email" binding:"required"`
	Source string `json:"source" binding:"required"`
}

// PlaceOrder runs checkout on the caller's active cart.
func PlaceOrder(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders"
		defer handlePanic(c, route)

		var req placeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		order, err := orders.Place(c.Request.Context(), c.GetHeader(tokenHeader), req.Email, req.Source)
		if err != nil {
			log.Println("[ORDER] [ERROR] checkout failed:", err)
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"order": order})
	}
}

// GetOrder returns one of the caller's own orders.
func GetOrder(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/:id"
		defer handlePanic(c, route)

		order, err := orders.Get(c.GetHeader(tokenHeader), c.Param("id"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

// ListOrders returns the caller's order history, newest first.
func ListOrders(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders"
		defer handlePanic(c, route)

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination parameters"})
			return
		}

		history, err := orders.History(c.GetHeader(tokenHeader), c.Query("email"), page, limit)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"orders": history, "page": page, "limit": limit})
	}
}
