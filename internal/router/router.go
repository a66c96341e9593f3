// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/skyfleet/airline-booking-api/internal/config"
	"github.com/skyfleet/airline-booking-api/internal/handler"
	"github.com/skyfleet/airline-booking-api/internal/middleware"
)

// RegisterRoutes registers routes that carry no authentication at all.
// Currently that is only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Register, login,
// refresh and logout live under /v1/auth and need no session; /v1/me is
// behind the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	me := e.Group("/v1")
	me.Use(middleware.JWTAuth(jwtSecret))
	me.GET("/me", a.Me)
}

// RegisterCatalog registers the reference-data resources.  Reads are public
// and run through the Redis response cache and rate limiter when a Redis
// client is available; writes require the STAFF role.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, jwtSecret string, rdb *redis.Client) {
	read := e.Group("/v1")
	if rdb != nil {
		read.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
		read.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	}

	read.GET("/countries", h.ListCountries)
	read.GET("/countries/:id", h.GetCountry)
	read.GET("/cities", h.ListCities)
	read.GET("/cities/:id", h.GetCity)
	read.GET("/airplane-types", h.ListAirplaneTypes)
	read.GET("/airplane-types/:id", h.GetAirplaneType)
	read.GET("/airplanes", h.ListAirplanes)
	read.GET("/airplanes/:id", h.GetAirplane)
	read.GET("/airports", h.ListAirports)
	read.GET("/airports/:id", h.GetAirport)
	read.GET("/routes", h.ListRoutes)
	read.GET("/routes/:id", h.GetRoute)
	read.GET("/crews", h.ListCrews)
	read.GET("/crews/:id", h.GetCrew)
	read.GET("/flights", h.ListFlights)
	read.GET("/flights/:id", h.GetFlight)
	read.GET("/flights/:id/tickets", h.FlightSeatMap)

	write := e.Group("/v1")
	write.Use(middleware.JWTAuth(jwtSecret))
	write.Use(middleware.RequireRole(handler.RoleStaff))

	write.POST("/countries", h.CreateCountry)
	write.PUT("/countries/:id", h.UpdateCountry)
	write.DELETE("/countries/:id", h.DeleteCountry)
	write.POST("/cities", h.CreateCity)
	write.PUT("/cities/:id", h.UpdateCity)
	write.DELETE("/cities/:id", h.DeleteCity)
	write.POST("/airplane-types", h.CreateAirplaneType)
	write.PUT("/airplane-types/:id", h.UpdateAirplaneType)
	write.DELETE("/airplane-types/:id", h.DeleteAirplaneType)
	write.POST("/airplanes", h.CreateAirplane)
	write.PUT("/airplanes/:id", h.UpdateAirplane)
	write.DELETE("/airplanes/:id", h.DeleteAirplane)
	write.POST("/airports", h.CreateAirport)
	write.PUT("/airports/:id", h.UpdateAirport)
	write.DELETE("/airports/:id", h.DeleteAirport)
	write.POST("/routes", h.CreateRoute)
	write.PUT("/routes/:id", h.UpdateRoute)
	write.DELETE("/routes/:id", h.DeleteRoute)
	write.POST("/crews", h.CreateCrew)
	write.PUT("/crews/:id", h.UpdateCrew)
	write.DELETE("/crews/:id", h.DeleteCrew)
	write.POST("/flights", h.CreateFlight)
	write.PUT("/flights/:id", h.UpdateFlight)
	write.DELETE("/flights/:id", h.DeleteFlight)
}

// RegisterBooking registers orders and tickets.  Every endpoint requires a
// valid access token; creation and reads are open to both roles with owner
// scoping applied inside the handlers, while update and delete are staff
// only.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(handler.RoleStaff, handler.RoleCustomer))

	auth.POST("/orders", h.CreateOrder)
	auth.GET("/orders", h.ListOrders)
	auth.GET("/orders/:id", h.GetOrder)
	auth.POST("/tickets", h.CreateTicket)
	auth.GET("/tickets", h.ListTickets)
	auth.GET("/tickets/:id", h.GetTicket)

	staff := e.Group("/v1")
	staff.Use(middleware.JWTAuth(jwtSecret))
	staff.Use(middleware.RequireRole(handler.RoleStaff))

	staff.PUT("/orders/:id", h.ReassignOrder)
	staff.DELETE("/orders/:id", h.DeleteOrder)
	staff.PUT("/tickets/:id", h.UpdateTicket)
	staff.DELETE("/tickets/:id", h.DeleteTicket)
}
