package handlers

import (
	"github.com/gin-gonic/gin"

	"pizzeria/internal/menu"
	"pizzeria/internal/middleware"
	"pizzeria/internal/services"
	"pizzeria/internal/token"
)

// Deps bundles everything the API surface needs. HTML templates and
// static assets are attached by the caller; tests mount only this.
type Deps struct {
	Users   *services.UserService
	Carts   *services.CartService
	Orders  *services.OrderService
	Auth    *token.Authority
	Catalog *menu.Catalog
}

// Router mounts the JSON API.
func Router(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID())

	r.GET("/ping", Ping)

	api := r.Group("/api")
	{
		api.POST("/users", CreateUser(deps.Users))
		api.GET("/users", GetUser(deps.Users))
		api.PUT("/users", UpdateUser(deps.Users))
		api.DELETE("/users", DeleteUser(deps.Users))

		api.POST("/tokens", Login(deps.Auth))
		api.GET("/tokens", GetToken(deps.Auth))
		api.PUT("/tokens", RenewToken(deps.Auth))
		api.DELETE("/tokens", RevokeToken(deps.Auth))

		api.GET("/menu", GetMenu(deps.Catalog))

		api.POST("/carts", CreateCart(deps.Carts))
		api.GET("/carts", GetCart(deps.Carts))
		api.PUT("/carts", UpdateCart(deps.Carts))
		api.DELETE("/carts", DeleteCart(deps.Carts))

		api.POST("/orders", PlaceOrder(deps.Orders))
		api.GET("/orders", ListOrders(deps.Orders))
		api.GET("/orders/:id", GetOrder(deps.Orders))
	}

	return r
}
