package machine

import (
	"iter"
	"time"

	"ticketmachine/entity"
)

// OfferRegistry holds date-bounded discount offers keyed by station
// name. A station may have any number of offers, overlapping ranges
// included. Offers for unknown stations are stored but never match.
type OfferRegistry struct {
	offers []entity.SpecialOffer
}

func NewOfferRegistry() *OfferRegistry {
	return &OfferRegistry{}
}

// Add stores the offer. The date range and factor are re-validated here
// even though the API layer checks them too: they are core invariants,
// not input niceties.
func (r *OfferRegistry) Add(offer entity.SpecialOffer) error {
	if offer.EndsOn.Before(offer.StartsOn) {
		return ErrInvalidOfferDates
	}
	if !offer.DiscountFactor.IsPositive() {
		return ErrInvalidFactor
	}

	r.offers = append(r.offers, offer)

	return nil
}

// DeleteForStation removes every offer for the named station and
// returns how many were removed. Removing none is a no-op, not an
// error.
func (r *OfferRegistry) DeleteForStation(name string) int {
	kept := r.offers[:0]
	removed := 0
	for _, o := range r.offers {
		if o.StationName == name {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	r.offers = kept

	return removed
}

// All yields the offers in insertion order. The sequence is restartable.
func (r *OfferRegistry) All() iter.Seq[entity.SpecialOffer] {
	return func(yield func(entity.SpecialOffer) bool) {
		for _, o := range r.offers {
			if !yield(o) {
				return
			}
		}
	}
}

// ActiveFor resolves the offer in effect for a station on a date. When
// several offers are active at once the lowest discount factor wins
// (best price for the customer), ties broken by earliest start date,
// then by insertion order.
func (r *OfferRegistry) ActiveFor(stationName string, date time.Time) (entity.SpecialOffer, bool) {
	var best entity.SpecialOffer
	found := false

	for _, o := range r.offers {
		if o.StationName != stationName || !o.Covers(date) {
			continue
		}
		if !found || betterOffer(o, best) {
			best = o
			found = true
		}
	}

	return best, found
}

func betterOffer(candidate, current entity.SpecialOffer) bool {
	switch candidate.DiscountFactor.Cmp(current.DiscountFactor) {
	case -1:
		return true
	case 1:
		return false
	}
	return candidate.StartsOn.Before(current.StartsOn)
}
