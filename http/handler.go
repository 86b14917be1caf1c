package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v3"
	"github.com/shopspring/decimal"

	"ticketmachine/entity"
	"ticketmachine/event"
	"ticketmachine/machine"
)

const (
	headerKeyCorrelationID = "Correlation-ID"
	dateLayout             = "2006-01-02"
)

type Publisher interface {
	Publish(ctx context.Context, event any) error
}

type handler struct {
	machine   *machine.Machine
	publisher Publisher
}

type stationResponse struct {
	Name        string `json:"name"`
	SinglePrice string `json:"single_price"`
	ReturnPrice string `json:"return_price"`
	SalesCount  int    `json:"sales_count"`
}

func newStationResponse(s entity.Station) stationResponse {
	return stationResponse{
		Name:        s.Name,
		SinglePrice: s.SinglePrice.StringFixed(2),
		ReturnPrice: s.ReturnPrice.StringFixed(2),
		SalesCount:  s.SalesCount,
	}
}

func (h handler) ListStations(c echo.Context) error {
	stations := h.machine.Stations()

	out := make([]stationResponse, 0, len(stations))
	for _, s := range stations {
		out = append(out, newStationResponse(s))
	}

	return c.JSON(http.StatusOK, out)
}

type createStationRequest struct {
	Name        string `json:"name"`
	SinglePrice string `json:"single_price"`
	ReturnPrice string `json:"return_price"`
}

func (h handler) CreateStation(c echo.Context) error {
	var request createStationRequest
	if err := c.Bind(&request); err != nil {
		return badRequest("failed to parse request", err)
	}
	if request.Name == "" {
		return badRequest("station name is required", nil)
	}

	singlePrice, err := parseAmount(request.SinglePrice)
	if err != nil {
		return badRequest("invalid single price", err)
	}
	returnPrice, err := parseAmount(request.ReturnPrice)
	if err != nil {
		return badRequest("invalid return price", err)
	}

	station := entity.Station{
		Name:        request.Name,
		SinglePrice: singlePrice,
		ReturnPrice: returnPrice,
	}
	if err := h.machine.AddStation(station); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, newStationResponse(station))
}

func (h handler) GetStation(c echo.Context) error {
	station, err := h.machine.SearchStation(c.Param("name"))
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, newStationResponse(station))
}

type editStationRequest struct {
	SinglePrice *string `json:"single_price"`
	ReturnPrice *string `json:"return_price"`
}

func (h handler) EditStation(c echo.Context) error {
	var request editStationRequest
	if err := c.Bind(&request); err != nil {
		return badRequest("failed to parse request", err)
	}

	var singlePrice, returnPrice *decimal.Decimal
	if request.SinglePrice != nil {
		p, err := parseAmount(*request.SinglePrice)
		if err != nil {
			return badRequest("invalid single price", err)
		}
		singlePrice = &p
	}
	if request.ReturnPrice != nil {
		p, err := parseAmount(*request.ReturnPrice)
		if err != nil {
			return badRequest("invalid return price", err)
		}
		returnPrice = &p
	}

	name := c.Param("name")
	if err := h.machine.EditStation(name, singlePrice, returnPrice); err != nil {
		return domainError(err)
	}

	station, err := h.machine.SearchStation(name)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, newStationResponse(station))
}

type repriceRequest struct {
	Factor string `json:"factor"`
}

func (h handler) RepriceStations(c echo.Context) error {
	var request repriceRequest
	if err := c.Bind(&request); err != nil {
		return badRequest("failed to parse request", err)
	}

	factor, err := decimal.NewFromString(request.Factor)
	if err != nil {
		return badRequest("invalid factor", err)
	}

	if err := h.machine.ChangeAllPrices(factor); err != nil {
		return domainError(err)
	}

	return h.ListStations(c)
}

type offerResponse struct {
	StationName    string `json:"station_name"`
	StartsOn       string `json:"starts_on"`
	EndsOn         string `json:"ends_on"`
	DiscountFactor string `json:"discount_factor"`
}

func (h handler) ListOffers(c echo.Context) error {
	offers := h.machine.Offers()

	out := make([]offerResponse, 0, len(offers))
	for _, o := range offers {
		out = append(out, offerResponse{
			StationName:    o.StationName,
			StartsOn:       o.StartsOn.Format(dateLayout),
			EndsOn:         o.EndsOn.Format(dateLayout),
			DiscountFactor: o.DiscountFactor.String(),
		})
	}

	return c.JSON(http.StatusOK, out)
}

type createOfferRequest struct {
	StationName    string `json:"station_name"`
	StartsOn       string `json:"starts_on"`
	EndsOn         string `json:"ends_on"`
	DiscountFactor string `json:"discount_factor"`
}

func (h handler) CreateOffer(c echo.Context) error {
	var request createOfferRequest
	if err := c.Bind(&request); err != nil {
		return badRequest("failed to parse request", err)
	}
	if request.StationName == "" {
		return badRequest("station name is required", nil)
	}

	startsOn, err := time.Parse(dateLayout, request.StartsOn)
	if err != nil {
		return badRequest("invalid start date", err)
	}
	endsOn, err := time.Parse(dateLayout, request.EndsOn)
	if err != nil {
		return badRequest("invalid end date", err)
	}
	factor, err := decimal.NewFromString(request.DiscountFactor)
	if err != nil {
		return badRequest("invalid discount factor", err)
	}

	offer := entity.SpecialOffer{
		StationName:    request.StationName,
		StartsOn:       startsOn,
		EndsOn:         endsOn,
		DiscountFactor: factor,
	}
	if err := h.machine.AddOffer(offer); err != nil {
		return domainError(err)
	}

	return c.NoContent(http.StatusCreated)
}

func (h handler) DeleteOffers(c echo.Context) error {
	removed := h.machine.DeleteOffersForStation(c.Param("station"))

	return c.JSON(http.StatusOK, map[string]int{"removed": removed})
}

type walletResponse struct {
	InsertedCredit string `json:"inserted_credit"`
	TotalTakings   string `json:"total_takings"`
}

func (h handler) GetWallet(c echo.Context) error {
	return c.JSON(http.StatusOK, walletResponse{
		InsertedCredit: h.machine.InsertedCredit().StringFixed(2),
		TotalTakings:   h.machine.TotalTakings().StringFixed(2),
	})
}

type insertMoneyRequest struct {
	Amount string `json:"amount"`
}

func (h handler) InsertMoney(c echo.Context) error {
	var request insertMoneyRequest
	if err := c.Bind(&request); err != nil {
		return badRequest("failed to parse request", err)
	}

	amount, err := decimal.NewFromString(request.Amount)
	if err != nil {
		return badRequest("invalid amount", err)
	}

	if err := h.machine.InsertMoney(amount); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"inserted_credit": h.machine.InsertedCredit().StringFixed(2),
	})
}

func (h handler) RefundMoney(c echo.Context) error {
	refunded := h.machine.Refund()

	if refunded.IsPositive() {
		ctx := correlatedContext(c)
		e := event.NewCreditRefunded(correlationID(c), refunded)
		if err := h.publisher.Publish(ctx, e); err != nil {
			return internalError(fmt.Errorf("publishing credit refunded event: %w", err))
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"refunded": refunded.StringFixed(2),
	})
}

type buyTicketRequest struct {
	Destination string `json:"destination"`
	Type        string `json:"type"`
}

type buyTicketResponse struct {
	TicketID    string `json:"ticket_id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Type        string `json:"type"`
	Price       string `json:"price"`
	Change      string `json:"change"`
}

func (h handler) BuyTicket(c echo.Context) error {
	var request buyTicketRequest
	if err := c.Bind(&request); err != nil {
		return badRequest("failed to parse request", err)
	}

	ticketType, err := entity.ParseTicketType(request.Type)
	if err != nil {
		return badRequest("invalid ticket type", err)
	}

	ticket, change, err := h.machine.BuyTicket(request.Destination, ticketType)
	if err != nil {
		return domainError(err)
	}

	ctx := correlatedContext(c)
	e := event.NewTicketIssued(correlationID(c), ticket, change)
	if err := h.publisher.Publish(ctx, e); err != nil {
		return internalError(fmt.Errorf("publishing ticket issued event: %w", err))
	}

	return c.JSON(http.StatusCreated, buyTicketResponse{
		TicketID:    ticket.ID,
		Origin:      ticket.Origin,
		Destination: ticket.Destination.Name,
		Type:        string(ticket.Type),
		Price:       ticket.Price.StringFixed(2),
		Change:      change.StringFixed(2),
	})
}

func correlationID(c echo.Context) string {
	id := c.Request().Header.Get(headerKeyCorrelationID)
	if id == "" {
		id = "gen_" + shortuuid.New()
	}
	return id
}

func correlatedContext(c echo.Context) context.Context {
	return log.ContextWithCorrelationID(c.Request().Context(), correlationID(c))
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if amount.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("amount %s is negative", s)
	}
	return amount, nil
}

func badRequest(message string, err error) *echo.HTTPError {
	return &echo.HTTPError{
		Code:     http.StatusBadRequest,
		Message:  message,
		Internal: err,
	}
}

func internalError(err error) *echo.HTTPError {
	return &echo.HTTPError{
		Code:     http.StatusInternalServerError,
		Message:  http.StatusText(http.StatusInternalServerError),
		Internal: err,
	}
}

// domainError maps the machine's expected failure modes to statuses.
func domainError(err error) *echo.HTTPError {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, machine.ErrStationNotFound):
		code = http.StatusNotFound
	case errors.Is(err, machine.ErrDuplicateStation):
		code = http.StatusConflict
	case errors.Is(err, machine.ErrInsufficientFunds):
		code = http.StatusPaymentRequired
	case errors.Is(err, machine.ErrInvalidAmount),
		errors.Is(err, machine.ErrInvalidFactor),
		errors.Is(err, machine.ErrInvalidOfferDates):
		code = http.StatusBadRequest
	}

	return &echo.HTTPError{
		Code:     code,
		Message:  err.Error(),
		Internal: err,
	}
}
