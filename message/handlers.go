package message

import (
	"context"
	"fmt"

	"ticketmachine/event"
)

const (
	sheetTicketsSold    = "tickets-sold"
	sheetCreditRefunded = "credit-refunded"
)

func handleIssueReceipt(issuer ReceiptIssuer) func(ctx context.Context, e *event.TicketIssued) error {
	return func(ctx context.Context, e *event.TicketIssued) error {
		receipt := Receipt{
			TicketID:    e.TicketID,
			Origin:      e.Origin,
			Destination: e.Destination,
			TicketType:  e.TicketType,
			Price:       e.Price,
		}

		if err := issuer.IssueReceipt(ctx, e.Header.IdempotencyKey, receipt); err != nil {
			return fmt.Errorf("issuing receipt: %w", err)
		}

		return nil
	}
}

func handleAppendToSalesTracker(tracker TrackerAppender) func(ctx context.Context, e *event.TicketIssued) error {
	return func(ctx context.Context, e *event.TicketIssued) error {
		row := []string{e.TicketID, e.Destination, e.TicketType, e.Price, e.Change}
		if err := tracker.AppendRow(ctx, sheetTicketsSold, row); err != nil {
			return fmt.Errorf("appending row to sales tracker: %w", err)
		}

		return nil
	}
}

func handleAppendToRefundTracker(tracker TrackerAppender) func(ctx context.Context, e *event.CreditRefunded) error {
	return func(ctx context.Context, e *event.CreditRefunded) error {
		row := []string{e.Header.ID, e.Amount}
		if err := tracker.AppendRow(ctx, sheetCreditRefunded, row); err != nil {
			return fmt.Errorf("appending row to refund tracker: %w", err)
		}

		return nil
	}
}
