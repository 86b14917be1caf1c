package http

import (
	"net/http"

	commonHTTP "github.com/ThreeDotsLabs/go-event-driven/common/http"
	"github.com/labstack/echo/v4"

	"ticketmachine/machine"
)

var ErrServerClosed = http.ErrServerClosed

func NewRouter(m *machine.Machine, publisher Publisher) *echo.Echo {
	server := commonHTTP.NewEcho()

	server.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	h := handler{
		machine:   m,
		publisher: publisher,
	}

	server.GET("/stations", h.ListStations)
	server.POST("/stations", h.CreateStation)
	server.GET("/stations/:name", h.GetStation)
	server.PATCH("/stations/:name", h.EditStation)
	server.POST("/stations/reprice", h.RepriceStations)

	server.GET("/offers", h.ListOffers)
	server.POST("/offers", h.CreateOffer)
	server.DELETE("/offers/:station", h.DeleteOffers)

	server.GET("/wallet", h.GetWallet)
	server.POST("/wallet/insert", h.InsertMoney)
	server.POST("/wallet/refund", h.RefundMoney)

	server.POST("/tickets", h.BuyTicket)

	return server
}
