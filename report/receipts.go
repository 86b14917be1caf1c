package report

import (
	"context"
	"strings"
	"sync"

	"ticketmachine/message"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
)

// ReceiptPrinter renders and "prints" receipts for issued tickets. It
// keeps the issued receipts so the admin surface and tests can inspect
// what came out of the slot. Issuing is idempotent on the idempotency
// key: redelivered events do not print twice.
type ReceiptPrinter struct {
	lock    sync.Mutex
	printed map[string]struct{}
	issued  []message.Receipt
}

func NewReceiptPrinter() *ReceiptPrinter {
	return &ReceiptPrinter{printed: make(map[string]struct{})}
}

func (p *ReceiptPrinter) IssueReceipt(ctx context.Context, idempotencyKey string, receipt message.Receipt) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if _, ok := p.printed[idempotencyKey]; ok {
		return nil
	}
	p.printed[idempotencyKey] = struct{}{}
	p.issued = append(p.issued, receipt)

	log.FromContext(ctx).
		WithField("ticket_id", receipt.TicketID).
		Info("Printing receipt:\n" + Render(receipt))

	return nil
}

// Issued returns a copy of all receipts printed so far.
func (p *ReceiptPrinter) Issued() []message.Receipt {
	p.lock.Lock()
	defer p.lock.Unlock()

	out := make([]message.Receipt, len(p.issued))
	copy(out, p.issued)
	return out
}

// Render produces the printable receipt block.
func Render(r message.Receipt) string {
	return strings.Join([]string{
		"***",
		"[" + r.Origin + "]",
		"to",
		"[" + r.Destination + "]",
		"Price: " + r.Price + " [" + strings.ToUpper(r.TicketType) + "]",
		"***",
	}, "\n")
}
