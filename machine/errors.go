package machine

import "errors"

// Domain errors. All of these are expected user-input conditions: the
// caller reports them and carries on, nothing here is fatal.
var (
	ErrDuplicateStation  = errors.New("station already exists")
	ErrStationNotFound   = errors.New("station not found")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInvalidFactor     = errors.New("factor must be greater than zero")
	ErrInsufficientFunds = errors.New("insufficient inserted credit")
	ErrInvalidOfferDates = errors.New("offer end date must not be before start date")
)
