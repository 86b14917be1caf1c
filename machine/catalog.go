package machine

import (
	"ticketmachine/entity"

	"github.com/shopspring/decimal"
)

// Catalog holds the sellable stations. Insertion order is preserved for
// listing; lookups go through a name index. Not safe for concurrent use
// on its own: the Machine serialises access.
type Catalog struct {
	stations []*entity.Station
	byName   map[string]*entity.Station
}

func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]*entity.Station)}
}

func (c *Catalog) Add(station entity.Station) error {
	if _, ok := c.byName[station.Name]; ok {
		return ErrDuplicateStation
	}

	s := station
	c.stations = append(c.stations, &s)
	c.byName[s.Name] = &s

	return nil
}

// Find returns a snapshot of the named station.
func (c *Catalog) Find(name string) (entity.Station, error) {
	s, ok := c.byName[name]
	if !ok {
		return entity.Station{}, ErrStationNotFound
	}
	return *s, nil
}

// Edit updates only the prices that are non-nil, leaving the rest
// unchanged. A missing station is an expected case, not a failure of
// the catalog.
func (c *Catalog) Edit(name string, singlePrice, returnPrice *decimal.Decimal) error {
	s, ok := c.byName[name]
	if !ok {
		return ErrStationNotFound
	}

	if singlePrice != nil {
		s.SinglePrice = *singlePrice
	}
	if returnPrice != nil {
		s.ReturnPrice = *returnPrice
	}

	return nil
}

// ChangeAllPrices multiplies every single and return price by factor.
// A factor of zero or less is rejected and no price is touched.
func (c *Catalog) ChangeAllPrices(factor decimal.Decimal) error {
	if !factor.IsPositive() {
		return ErrInvalidFactor
	}

	for _, s := range c.stations {
		s.SinglePrice = s.SinglePrice.Mul(factor)
		s.ReturnPrice = s.ReturnPrice.Mul(factor)
	}

	return nil
}

// RecordSale increments the sales counter for the named station. Called
// exactly once per successful purchase.
func (c *Catalog) RecordSale(name string) error {
	s, ok := c.byName[name]
	if !ok {
		return ErrStationNotFound
	}
	s.SalesCount++
	return nil
}

// List returns snapshot copies of all stations in insertion order.
func (c *Catalog) List() []entity.Station {
	out := make([]entity.Station, 0, len(c.stations))
	for _, s := range c.stations {
		out = append(out, *s)
	}
	return out
}
