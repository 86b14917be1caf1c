package machine

import (
	"sync"
	"time"

	"ticketmachine/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Machine is the vending machine's transaction engine. It owns the
// catalog, offer registry and wallet exclusively; a single mutex
// serialises every operation so the monetary invariants hold when the
// machine is driven over the network.
type Machine struct {
	mu      sync.Mutex
	origin  string
	now     func() time.Time
	catalog *Catalog
	offers  *OfferRegistry
	wallet  *Wallet
}

// New builds an empty machine selling tickets from origin. The clock is
// injected so date-dependent pricing is testable; pass time.Now in
// production.
func New(origin string, now func() time.Time) *Machine {
	return &Machine{
		origin:  origin,
		now:     now,
		catalog: NewCatalog(),
		offers:  NewOfferRegistry(),
		wallet:  NewWallet(),
	}
}

// SearchStation looks up a destination by exact name.
func (m *Machine) SearchStation(name string) (entity.Station, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.catalog.Find(name)
}

func (m *Machine) InsertMoney(amount decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.wallet.Insert(amount)
}

// Refund hands back everything in the slot.
func (m *Machine) Refund() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.wallet.Refund()
}

// BuyTicket attempts a purchase: resolve the destination, price it for
// today, charge the wallet, record the sale, issue a ticket. A failed
// attempt mutates nothing; inserted credit survives for the next try.
func (m *Machine) BuyTicket(destination string, t entity.TicketType) (entity.Ticket, decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	station, err := m.catalog.Find(destination)
	if err != nil {
		return entity.Ticket{}, decimal.Zero, err
	}

	price := EffectivePrice(station, t, m.now(), m.offers)

	change, err := m.wallet.Charge(price)
	if err != nil {
		return entity.Ticket{}, decimal.Zero, err
	}

	if err := m.catalog.RecordSale(station.Name); err != nil {
		// The station was found above and nothing can remove it.
		panic("recording sale for resolved station: " + err.Error())
	}
	station.SalesCount++

	ticket := entity.Ticket{
		ID:          uuid.NewString(),
		Origin:      m.origin,
		Destination: station,
		Type:        t,
		Price:       price,
	}

	return ticket, change, nil
}

func (m *Machine) AddStation(station entity.Station) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.catalog.Add(station)
}

func (m *Machine) EditStation(name string, singlePrice, returnPrice *decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.catalog.Edit(name, singlePrice, returnPrice)
}

func (m *Machine) ChangeAllPrices(factor decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.catalog.ChangeAllPrices(factor)
}

func (m *Machine) AddOffer(offer entity.SpecialOffer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.offers.Add(offer)
}

func (m *Machine) DeleteOffersForStation(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.offers.DeleteForStation(name)
}

// Stations lists the catalog in insertion order.
func (m *Machine) Stations() []entity.Station {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.catalog.List()
}

// Offers returns a snapshot of all offers in insertion order.
func (m *Machine) Offers() []entity.SpecialOffer {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []entity.SpecialOffer
	for o := range m.offers.All() {
		out = append(out, o)
	}
	return out
}

func (m *Machine) InsertedCredit() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.wallet.InsertedCredit()
}

func (m *Machine) TotalTakings() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.wallet.TotalTakings()
}
