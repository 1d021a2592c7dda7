package main

import (
	"log"

	"pizzeria/internal/config"
	"pizzeria/internal/console"
	"pizzeria/internal/gateway"
	"pizzeria/internal/handlers"
	"pizzeria/internal/menu"
	"pizzeria/internal/services"
	"pizzeria/internal/storage"
	"pizzeria/internal/token"
)

func main() {
	config.Load()

	store, err := storage.New(config.AppEnv.DataDir)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("[MAIN] [INFO] data dir ready:", config.AppEnv.DataDir)

	catalog := menu.Default()
	auth := token.New(store, config.AppEnv.TokenTTL)

	payment := gateway.NewStripeClient(config.AppEnv.StripeKey)
	email := gateway.NewMailgunClient(config.AppEnv.MailgunKey, config.AppEnv.MailgunDomain, config.AppEnv.MailgunSender)

	users := services.NewUserService(store, auth)
	carts := services.NewCartService(store, auth, catalog)
	orders := services.NewOrderService(store, auth, catalog, payment, email)

	r := handlers.Router(handlers.Deps{
		Users:   users,
		Carts:   carts,
		Orders:  orders,
		Auth:    auth,
		Catalog: catalog,
	})

	r.LoadHTMLGlob("templates/*")
	r.Static("/public", "./public")
	r.GET("/", handlers.HomePage)
	r.GET("/menu", handlers.MenuPage(catalog))

	if config.AppEnv.Console {
		go func() {
			if err := console.New(store, orders, catalog).Run(); err != nil {
				log.Println("[CLI] [ERROR] console stopped:", err)
			}
		}()
	}

	log.Println("[MAIN] [INFO] listening on port", config.AppEnv.Port)
	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		log.Fatal(err)
	}
}
