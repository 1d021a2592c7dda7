package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pizzeria/internal/token"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type renewRequest struct {
	ID     string `json:"id" binding:"required"`
	Extend bool   `json:"extend"`
}

// Login verifies credentials and hands out a fresh token.
func Login(auth *token.Authority) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/tokens"
		defer handlePanic(c, route)

		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		tok, err := auth.Issue(req.Email, req.Password)
		if err != nil {
			log.Println("[AUTH] [ERROR] login failed for:", req.Email)
			respondServiceError(c, route, err)
			return
		}

		log.Println("[AUTH] [INFO] login succeeded:", req.Email)
		c.JSON(http.StatusCreated, gin.H{"token": tok})
	}
}

// GetToken returns the token record for an id the caller already
// holds.
func GetToken(auth *token.Authority) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/tokens"
		defer handlePanic(c, route)

		tok, err := auth.Get(c.Query("id"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": tok})
	}
}

// RenewToken extends a live token by the configured TTL. The wire
// format requires extend=true, matching the original API.
func RenewToken(auth *token.Authority) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/tokens"
		defer handlePanic(c, route)

		var req renewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if !req.Extend {
			c.JSON(http.StatusBadRequest, gin.H{"error": "extend must be true"})
			return
		}

		if err := auth.Renew(req.ID); err != nil {
			log.Println("[AUTH] [ERROR] renew failed:", err)
			respondServiceError(c, route, err)
			return
		}

		tok, err := auth.Get(req.ID)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": tok})
	}
}

// RevokeToken is logout.
func RevokeToken(auth *token.Authority) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/tokens"
		defer handlePanic(c, route)

		if err := auth.Revoke(c.Query("id")); err != nil {
			log.Println("[AUTH] [ERROR] revoke failed:", err)
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}
