package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pizzeria/internal/services"
)

type cartRequest struct {
	Email   string `json:"email" binding:"required"`
	Pizzas  []int  `json:"pizzas" binding:"required"`
	Amounts []int  `json:"amounts" binding:"required"`
}

// CreateCart opens the caller's active cart.
func CreateCart(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/carts"
		defer handlePanic(c, route)

		var req cartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		cart, err := carts.Create(c.GetHeader(tokenHeader), services.CartInput{
			Email:   req.Email,
			Pizzas:  req.Pizzas,
			Amounts: req.Amounts,
		})
		if err != nil {
			log.Println("[CART] [ERROR] create failed:", err)
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"cart": cart})
	}
}

// GetCart returns the caller's active cart.
func GetCart(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/carts"
		defer handlePanic(c, route)

		cart, err := carts.Get(c.GetHeader(tokenHeader), c.Query("email"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

// UpdateCart replaces the active cart's line items.
func UpdateCart(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/carts"
		defer handlePanic(c, route)

		var req cartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		cart, err := carts.Update(c.GetHeader(tokenHeader), services.CartInput{
			Email:   req.Email,
			Pizzas:  req.Pizzas,
			Amounts: req.Amounts,
		})
		if err != nil {
			log.Println("[CART] [ERROR] update failed:", err)
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

// DeleteCart abandons the active cart.
func DeleteCart(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/carts"
		defer handlePanic(c, route)

		if err := carts.Delete(c.GetHeader(tokenHeader), c.Query("email")); err != nil {
			log.Println("[CART] [ERROR] delete failed:", err)
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "cart deleted"})
	}
}
