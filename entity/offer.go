package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SpecialOffer is a date-bounded multiplicative discount on a station's
// fares. Both bounds are inclusive. The station does not have to exist:
// an offer for an unknown station is latent and never matches.
type SpecialOffer struct {
	StationName    string          `json:"station_name"`
	StartsOn       time.Time       `json:"starts_on"`
	EndsOn         time.Time       `json:"ends_on"`
	DiscountFactor decimal.Decimal `json:"discount_factor"`
}

// Covers reports whether the offer is active on the given date.
func (o SpecialOffer) Covers(date time.Time) bool {
	return !date.Before(o.StartsOn) && !date.After(o.EndsOn)
}
