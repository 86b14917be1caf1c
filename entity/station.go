package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type TicketType string

const (
	TicketTypeSingle TicketType = "single"
	TicketTypeReturn TicketType = "return"
)

func ParseTicketType(s string) (TicketType, error) {
	switch TicketType(s) {
	case TicketTypeSingle:
		return TicketTypeSingle, nil
	case TicketTypeReturn:
		return TicketTypeReturn, nil
	default:
		return "", fmt.Errorf("unknown ticket type %q", s)
	}
}

// Station is a sellable destination. Name is the unique key, matched
// case-sensitively.
type Station struct {
	Name        string          `json:"name"`
	SinglePrice decimal.Decimal `json:"single_price"`
	ReturnPrice decimal.Decimal `json:"return_price"`
	SalesCount  int             `json:"sales_count"`
}

// Price returns the base fare for the given ticket type, before offers.
func (s Station) Price(t TicketType) decimal.Decimal {
	if t == TicketTypeReturn {
		return s.ReturnPrice
	}
	return s.SinglePrice
}
