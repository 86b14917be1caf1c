package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Ticket is the receipt handed back after a successful purchase. The
// machine keeps no history of issued tickets; Destination is a snapshot
// of the station at issuance.
type Ticket struct {
	ID          string          `json:"ticket_id"`
	Origin      string          `json:"origin"`
	Destination Station         `json:"destination"`
	Type        TicketType      `json:"type"`
	Price       decimal.Decimal `json:"price"`
}

// Formatted renders the printable receipt block. Prices are rounded to
// two decimal places here and nowhere earlier.
func (t Ticket) Formatted() string {
	return strings.Join([]string{
		"***",
		fmt.Sprintf("[%s]", t.Origin),
		"to",
		fmt.Sprintf("[%s]", t.Destination.Name),
		fmt.Sprintf("Price: %s [%s]", t.Price.StringFixed(2), strings.ToUpper(string(t.Type))),
		"***",
	}, "\n")
}
