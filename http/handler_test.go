package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketmachine/entity"
	"ticketmachine/event"
	machineHTTP "ticketmachine/http"
	"ticketmachine/machine"
)

type mockPublisher struct {
	lock   sync.Mutex
	events []any
}

func (p *mockPublisher) Publish(_ context.Context, e any) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.events = append(p.events, e)
	return nil
}

func (p *mockPublisher) published() []any {
	p.lock.Lock()
	defer p.lock.Unlock()

	out := make([]any, len(p.events))
	copy(out, p.events)
	return out
}

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

type fixture struct {
	machine   *machine.Machine
	publisher *mockPublisher
	server    http.Handler
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	today := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	m := machine.New("Central", func() time.Time { return today })
	require.NoError(t, m.AddStation(entity.Station{
		Name:        "London",
		SinglePrice: decimalFromString(t, "12.50"),
		ReturnPrice: decimalFromString(t, "20.00"),
	}))

	publisher := &mockPublisher{}

	return fixture{
		machine:   m,
		publisher: publisher,
		server:    machineHTTP.NewRouter(m, publisher),
	}
}

func (f fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestBuyTicketSucceedsAndPublishesEvent(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/wallet/insert", `{"amount":"15.00"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/tickets", `{"destination":"London","type":"single"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		TicketID    string `json:"ticket_id"`
		Origin      string `json:"origin"`
		Destination string `json:"destination"`
		Type        string `json:"type"`
		Price       string `json:"price"`
		Change      string `json:"change"`
	}
	decodeJSON(t, rec, &resp)

	assert.NotEmpty(t, resp.TicketID)
	assert.Equal(t, "Central", resp.Origin)
	assert.Equal(t, "London", resp.Destination)
	assert.Equal(t, "single", resp.Type)
	assert.Equal(t, "12.50", resp.Price)
	assert.Equal(t, "2.50", resp.Change)

	published := f.publisher.published()
	require.Len(t, published, 1)
	issued, ok := published[0].(event.TicketIssued)
	require.True(t, ok, "expected TicketIssued, got %T", published[0])
	assert.Equal(t, resp.TicketID, issued.TicketID)
	assert.Equal(t, "12.50", issued.Price)
	assert.Equal(t, "2.50", issued.Change)
}

func TestBuyTicketUnknownDestination(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/wallet/insert", `{"amount":"15.00"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/tickets", `{"destination":"Glasgow","type":"single"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, f.publisher.published())

	// Credit is untouched by the failed attempt.
	rec = f.do(t, http.MethodGet, "/wallet", "")
	var wallet struct {
		InsertedCredit string `json:"inserted_credit"`
	}
	decodeJSON(t, rec, &wallet)
	assert.Equal(t, "15.00", wallet.InsertedCredit)
}

func TestBuyTicketInsufficientFunds(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/wallet/insert", `{"amount":"5.00"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/tickets", `{"destination":"London","type":"single"}`)
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.Empty(t, f.publisher.published())
}

func TestBuyTicketRejectsUnknownType(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/tickets", `{"destination":"London","type":"season"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInsertMoneyRejectsNonPositiveAmount(t *testing.T) {
	f := newFixture(t)

	for _, body := range []string{`{"amount":"0"}`, `{"amount":"-2.00"}`} {
		rec := f.do(t, http.MethodPost, "/wallet/insert", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}

	rec := f.do(t, http.MethodPost, "/wallet/insert", `{"amount":"not-money"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefundPublishesEventOnlyWhenCreditReturned(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/wallet/refund", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, f.publisher.published())

	rec = f.do(t, http.MethodPost, "/wallet/insert", `{"amount":"3.20"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/wallet/refund", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Refunded string `json:"refunded"`
	}
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "3.20", resp.Refunded)

	published := f.publisher.published()
	require.Len(t, published, 1)
	refunded, ok := published[0].(event.CreditRefunded)
	require.True(t, ok, "expected CreditRefunded, got %T", published[0])
	assert.Equal(t, "3.20", refunded.Amount)
}

func TestCreateStationRejectsDuplicate(t *testing.T) {
	f := newFixture(t)

	body := `{"name":"Bristol","single_price":"8.00","return_price":"14.00"}`
	rec := f.do(t, http.MethodPost, "/stations", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPost, "/stations", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestEditStationUpdatesOnlyProvidedFields(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPatch, "/stations/London", `{"single_price":"13.00"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		SinglePrice string `json:"single_price"`
		ReturnPrice string `json:"return_price"`
	}
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "13.00", resp.SinglePrice)
	assert.Equal(t, "20.00", resp.ReturnPrice)

	rec = f.do(t, http.MethodPatch, "/stations/Glasgow", `{"single_price":"1.00"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRepriceStations(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/stations/reprice", `{"factor":"1.1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var stations []struct {
		SinglePrice string `json:"single_price"`
		ReturnPrice string `json:"return_price"`
	}
	decodeJSON(t, rec, &stations)
	require.Len(t, stations, 1)
	assert.Equal(t, "13.75", stations[0].SinglePrice)
	assert.Equal(t, "22.00", stations[0].ReturnPrice)

	rec = f.do(t, http.MethodPost, "/stations/reprice", `{"factor":"0"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOfferLifecycle(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/offers",
		`{"station_name":"London","starts_on":"2024-01-01","ends_on":"2024-01-31","discount_factor":"0.8"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// End before start is rejected.
	rec = f.do(t, http.MethodPost, "/offers",
		`{"station_name":"London","starts_on":"2024-02-01","ends_on":"2024-01-01","discount_factor":"0.8"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/offers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var offers []struct {
		StationName string `json:"station_name"`
		StartsOn    string `json:"starts_on"`
	}
	decodeJSON(t, rec, &offers)
	require.Len(t, offers, 1)
	assert.Equal(t, "London", offers[0].StationName)
	assert.Equal(t, "2024-01-01", offers[0].StartsOn)

	// The offer discounts a purchase made on the fixture's date.
	rec = f.do(t, http.MethodPost, "/wallet/insert", `{"amount":"10.00"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(t, http.MethodPost, "/tickets", `{"destination":"London","type":"single"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var bought struct {
		Price string `json:"price"`
	}
	decodeJSON(t, rec, &bought)
	assert.Equal(t, "10.00", bought.Price)

	rec = f.do(t, http.MethodDelete, "/offers/London", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var deleted struct {
		Removed int `json:"removed"`
	}
	decodeJSON(t, rec, &deleted)
	assert.Equal(t, 1, deleted.Removed)

	rec = f.do(t, http.MethodDelete, "/offers/London", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &deleted)
	assert.Equal(t, 0, deleted.Removed)
}
