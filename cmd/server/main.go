package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/skyfleet/airline-booking-api/internal/config"
	"github.com/skyfleet/airline-booking-api/internal/database"
	"github.com/skyfleet/airline-booking-api/internal/handler"
	"github.com/skyfleet/airline-booking-api/internal/queue"
	"github.com/skyfleet/airline-booking-api/internal/repository"
	"github.com/skyfleet/airline-booking-api/internal/router"
	queuepublisher "github.com/skyfleet/airline-booking-api/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()

	countries := repository.NewCountryRepo(db)
	cities := repository.NewCityRepo(db)
	airplaneTypes := repository.NewAirplaneTypeRepo(db)
	airplanes := repository.NewAirplaneRepo(db)
	airports := repository.NewAirportRepo(db)
	routes := repository.NewRouteRepo(db)
	crews := repository.NewCrewRepo(db)
	flights := repository.NewFlightRepo(db)
	orders := repository.NewOrderRepo(db)
	tickets := repository.NewTicketRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	auth := handler.NewAuthHandler(cfg, users, tokens)
	catalog := handler.NewCatalogHandler(countries, cities, airplaneTypes, airplanes,
		airports, routes, crews, flights, tickets)
	booking := handler.NewBookingHandler(orders, tickets, flights,
		queuepublisher.PublishTicketBooked)

	go func() {
		if err := queue.StartTicketConsumer(); err != nil {
			log.Printf("ticket consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterCatalog(e, catalog, cfg.JWTSecret, rdb)
	router.RegisterBooking(e, booking, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
