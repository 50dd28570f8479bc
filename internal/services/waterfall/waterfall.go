package waterfall

import (
	"fmt"

	"MoverScan/internal/domain/models"
)

// Resolve returns the first candidate that is present and not the zero value,
// or fallback when none qualifies. NaN never qualifies.
func Resolve[T comparable](fallback T, candidates ...*T) T {
	var zero T
	for _, c := range candidates {
		if c == nil {
			continue
		}
		v := *c
		if v != v || v == zero {
			continue
		}
		return v
	}
	return fallback
}

// Order is a priority list of PartialQuote fields.
type Order []models.QuoteField

// Resolve applies the waterfall over q's fields in o's order.
func (o Order) Resolve(q *models.PartialQuote, fallback float64) float64 {
	return Resolve(fallback, q.Fields(o)...)
}

// Validate rejects unknown field names.
func (o Order) Validate() error {
	for _, f := range o {
		if !f.Valid() {
			return fmt.Errorf("unknown quote field %q", f)
		}
	}
	return nil
}

// Plan holds the per-field priority lists used within one session.
type Plan struct {
	Price         Order
	PreviousClose Order
	Change        Order
	ChangePercent Order
	Volume        Order
}

// Validate checks every order in the plan.
func (p Plan) Validate() error {
	for name, o := range map[string]Order{
		"price":          p.Price,
		"previous_close": p.PreviousClose,
		"change":         p.Change,
		"change_percent": p.ChangePercent,
		"volume":         p.Volume,
	} {
		if len(o) == 0 {
			return fmt.Errorf("%s: empty order", name)
		}
		if err := o.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// DefaultPlans returns the built-in session plans. Outside regular hours the
// extended-hours print wins over the provider's headline price, and the
// post-market change is measured against today's regular close.
func DefaultPlans() map[models.Session]Plan {
	return map[models.Session]Plan{
		models.SessionPre: {
			Price:         Order{models.FieldExtendedPrice, models.FieldLastTradePrice, models.FieldPrice},
			PreviousClose: Order{models.FieldPreviousClose, models.FieldRegularClose},
			Change:        Order{models.FieldExtendedChange, models.FieldChange},
			ChangePercent: Order{models.FieldExtendedChangePercent, models.FieldChangePercent},
			Volume:        Order{models.FieldExtendedVolume, models.FieldVolume},
		},
		models.SessionRegular: {
			Price:         Order{models.FieldPrice, models.FieldLastTradePrice, models.FieldExtendedPrice},
			PreviousClose: Order{models.FieldPreviousClose},
			Change:        Order{models.FieldChange},
			ChangePercent: Order{models.FieldChangePercent, models.FieldExtendedChangePercent},
			Volume:        Order{models.FieldVolume},
		},
		models.SessionPost: {
			Price:         Order{models.FieldExtendedPrice, models.FieldLastTradePrice, models.FieldPrice},
			PreviousClose: Order{models.FieldRegularClose, models.FieldPreviousClose},
			Change:        Order{models.FieldExtendedChange, models.FieldChange},
			ChangePercent: Order{models.FieldExtendedChangePercent, models.FieldChangePercent},
			Volume:        Order{models.FieldVolume, models.FieldExtendedVolume},
		},
	}
}

// ParseOrder converts configuration strings into an Order.
func ParseOrder(names []string) (Order, error) {
	o := make(Order, 0, len(names))
	for _, n := range names {
		o = append(o, models.QuoteField(n))
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}
