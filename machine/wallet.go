package machine

import "github.com/shopspring/decimal"

// Wallet tracks the cash currently in the slot and the cumulative
// takings from completed purchases. Inserted credit only leaves via a
// successful charge (moving into takings) or an explicit refund.
type Wallet struct {
	insertedCredit decimal.Decimal
	totalTakings   decimal.Decimal
}

func NewWallet() *Wallet {
	return &Wallet{}
}

func (w *Wallet) Insert(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	w.insertedCredit = w.insertedCredit.Add(amount)

	return nil
}

// Charge commits amount to the takings and returns the remainder as
// change. Inserted credit always ends at zero after a successful
// charge: the full remainder is handed back, nothing carries over to
// the next purchase. On failure nothing changes.
func (w *Wallet) Charge(amount decimal.Decimal) (decimal.Decimal, error) {
	if w.insertedCredit.LessThan(amount) {
		return decimal.Zero, ErrInsufficientFunds
	}

	change := w.insertedCredit.Sub(amount)
	w.totalTakings = w.totalTakings.Add(amount)
	w.insertedCredit = decimal.Zero

	return change, nil
}

// Refund returns the full inserted credit and resets it to zero.
// Refunding nothing is a valid no-op.
func (w *Wallet) Refund() decimal.Decimal {
	refunded := w.insertedCredit
	w.insertedCredit = decimal.Zero
	return refunded
}

func (w *Wallet) InsertedCredit() decimal.Decimal {
	return w.insertedCredit
}

func (w *Wallet) TotalTakings() decimal.Decimal {
	return w.totalTakings
}
