package machine

import (
	"time"

	"ticketmachine/entity"

	"github.com/shopspring/decimal"
)

// EffectivePrice computes the fare for a station, ticket type and date:
// the base price for the type, multiplied by the active offer's
// discount factor if one is in effect. The result is carried unrounded;
// rounding to two decimal places happens only at presentation.
func EffectivePrice(station entity.Station, t entity.TicketType, date time.Time, offers *OfferRegistry) decimal.Decimal {
	base := station.Price(t)

	if offer, ok := offers.ActiveFor(station.Name, date); ok {
		return base.Mul(offer.DiscountFactor)
	}

	return base
}
