package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pizzeria/internal/services"
)

type createUserRequest struct {
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	Email         string `json:"email" binding:"required"`
	Password      string `json:"password" binding:"required"`
	StreetAddress string `json:"streetAddress" binding:"required"`
}

type updateUserRequest struct {
	Email         string  `json:"email" binding:"required"`
	FirstName     *string `json:"firstName"`
	LastName      *string `json:"lastName"`
	Password      *string `json:"password"`
	StreetAddress *string `json:"streetAddress"`
}

// CreateUser handles signup. The only unauthenticated write in the
// API.
func CreateUser(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/users"
		defer handlePanic(c, route)

		var req createUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		user, err := users.Create(services.CreateUserInput{
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			Email:         req.Email,
			Password:      req.Password,
			StreetAddress: req.StreetAddress,
		})
		if err != nil {
			log.Println("[USER] [ERROR] signup failed:", err)
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"user": user})
	}
}

// GetUser returns the caller's own record, password hash stripped.
func GetUser(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/users"
		defer handlePanic(c, route)

		user, err := users.Get(c.GetHeader(tokenHeader), c.Query("email"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// UpdateUser applies a partial update to the caller's own record.
func UpdateUser(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/users"
		defer handlePanic(c, route)

		var req updateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		user, err := users.Update(c.GetHeader(tokenHeader), services.UpdateUserInput{
			Email:         req.Email,
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			Password:      req.Password,
			StreetAddress: req.StreetAddress,
		})
		if err != nil {
			log.Println("[USER] [ERROR] update failed:", err)
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// DeleteUser removes the caller's account and its active cart.
func DeleteUser(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/users"
		defer handlePanic(c, route)

		if err := users.Delete(c.GetHeader(tokenHeader), c.Query("email")); err != nil {
			log.Println("[USER] [ERROR] delete failed:", err)
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
	}
}
