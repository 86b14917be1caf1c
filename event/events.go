package event

import (
	"time"

	"ticketmachine/entity"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/shopspring/decimal"
)

type header struct {
	ID             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func newHeader(idempotencyKey string) header {
	return header{
		ID:             watermill.NewUUID(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: idempotencyKey,
	}
}

// TicketIssued is published after a successful purchase. Amounts are
// rendered to two decimal places at this boundary.
type TicketIssued struct {
	Header      header `json:"header"`
	TicketID    string `json:"ticket_id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	TicketType  string `json:"ticket_type"`
	Price       string `json:"price"`
	Change      string `json:"change"`
}

func NewTicketIssued(idempotencyKey string, ticket entity.Ticket, change decimal.Decimal) TicketIssued {
	return TicketIssued{
		Header:      newHeader(idempotencyKey),
		TicketID:    ticket.ID,
		Origin:      ticket.Origin,
		Destination: ticket.Destination.Name,
		TicketType:  string(ticket.Type),
		Price:       ticket.Price.StringFixed(2),
		Change:      change.StringFixed(2),
	}
}

// CreditRefunded is published when inserted credit is handed back.
type CreditRefunded struct {
	Header header `json:"header"`
	Amount string `json:"amount"`
}

func NewCreditRefunded(idempotencyKey string, amount decimal.Decimal) CreditRefunded {
	return CreditRefunded{
		Header: newHeader(idempotencyKey),
		Amount: amount.StringFixed(2),
	}
}
