package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"pizzeria/internal/menu"
)

func HomePage(c *gin.Context) {
	c.HTML(200, "home.html", gin.H{})
}

type menuRow struct {
	Name  string
	Price string
}

func MenuPage(catalog *menu.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		items := catalog.Items()
		rows := make([]menuRow, 0, len(items))
		for _, item := range items {
			rows = append(rows, menuRow{
				Name:  item.Name,
				Price: fmt.Sprintf("$%d.%02d", item.Price/100, item.Price%100),
			})
		}
		c.HTML(200, "menu.html", gin.H{"items": rows})
	}
}

// Ping is the health probe.
func Ping(c *gin.Context) {
	c.JSON(200, gin.H{"message": "pong"})
}

// GetMenu serves the catalog as JSON.
func GetMenu(catalog *menu.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"menu": catalog.Items()})
	}
}
