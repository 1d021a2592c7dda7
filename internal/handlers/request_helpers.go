package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"pizzeria/internal/gateway"
	"pizzeria/internal/services"
	"pizzeria/internal/storage"
	"pizzeria/internal/token"
)

// tokenHeader is the wire field carrying the bearer token id.
const tokenHeader = "token"

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := lowerCamel(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"details": details,
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "details": err.Error()})
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// respondServiceError maps the service error taxonomy onto HTTP. Every
// expected failure is translated here; anything unrecognized is a 500.
func respondServiceError(c *gin.Context, route string, err error) {
	var validation services.ValidationError
	var badKey storage.BadKeyError
	var gatewayErr gateway.GatewayError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error(), "field": validation.Field})
	case errors.As(err, &badKey):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, token.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, storage.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, services.ErrActiveCartExists):
		c.JSON(http.StatusConflict, gin.H{"error": "user already has an active cart"})
	case errors.Is(err, services.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
	case errors.Is(err, token.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, token.ErrExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token expired"})
	case errors.As(err, &gatewayErr):
		log.Printf("[%s] gateway failure: %v", route, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment could not be processed"})
	default:
		log.Printf("[%s] unexpected error: %v", route, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
