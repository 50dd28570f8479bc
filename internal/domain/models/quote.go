package models

import "time"

// Session is the New York trading window a scan runs in.
type Session string

const (
	SessionPre     Session = "pre"
	SessionRegular Session = "regular"
	SessionPost    Session = "post"
)

// Sessions lists every session in trading-day order.
var Sessions = []Session{SessionPre, SessionRegular, SessionPost}

// Valid reports whether s is a known session.
func (s Session) Valid() bool {
	switch s {
	case SessionPre, SessionRegular, SessionPost:
		return true
	default:
		return false
	}
}

// Quote is the canonical mover record served to clients.
type Quote struct {
	Symbol        string    `json:"symbol"`
	DisplayName   string    `json:"displayName"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Volume        float64   `json:"volume"`
	AverageVolume float64   `json:"averageVolume"`
	VolumeRatio   float64   `json:"volumeRatio"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Open          float64   `json:"open"`
	PreviousClose float64   `json:"previousClose"`
	Session       Session   `json:"session"`
	ObservedAt    time.Time `json:"observedAt"`
	Triggered     bool      `json:"triggered"`
	Source        string    `json:"source"`
}

// PartialQuote is what a single provider knows about a symbol.
// A nil field means the provider did not report it.
type PartialQuote struct {
	Symbol      string
	DisplayName string
	Source      string
	ObservedAt  time.Time

	Price          *float64
	LastTradePrice *float64
	ExtendedPrice  *float64
	PreviousClose  *float64
	RegularClose   *float64

	Change                *float64
	ChangePercent         *float64
	ExtendedChange        *float64
	ExtendedChangePercent *float64

	Volume         *float64
	ExtendedVolume *float64
	AverageVolume  *float64
	High           *float64
	Low            *float64
	Open           *float64
}

// QuoteField names a numeric PartialQuote field. Waterfall priority lists are
// expressed in these keys so they can live in configuration.
type QuoteField string

const (
	FieldPrice                 QuoteField = "price"
	FieldLastTradePrice        QuoteField = "last_trade_price"
	FieldExtendedPrice         QuoteField = "extended_price"
	FieldPreviousClose         QuoteField = "previous_close"
	FieldRegularClose          QuoteField = "regular_close"
	FieldChange                QuoteField = "change"
	FieldChangePercent         QuoteField = "change_percent"
	FieldExtendedChange        QuoteField = "extended_change"
	FieldExtendedChangePercent QuoteField = "extended_change_percent"
	FieldVolume                QuoteField = "volume"
	FieldExtendedVolume        QuoteField = "extended_volume"
	FieldAverageVolume         QuoteField = "average_volume"
	FieldHigh                  QuoteField = "high"
	FieldLow                   QuoteField = "low"
	FieldOpen                  QuoteField = "open"
)

// Valid reports whether f names a PartialQuote field.
func (f QuoteField) Valid() bool {
	_, ok := fieldAccessors[f]
	return ok
}

var fieldAccessors = map[QuoteField]func(*PartialQuote) *float64{
	FieldPrice:                 func(p *PartialQuote) *float64 { return p.Price },
	FieldLastTradePrice:        func(p *PartialQuote) *float64 { return p.LastTradePrice },
	FieldExtendedPrice:         func(p *PartialQuote) *float64 { return p.ExtendedPrice },
	FieldPreviousClose:         func(p *PartialQuote) *float64 { return p.PreviousClose },
	FieldRegularClose:          func(p *PartialQuote) *float64 { return p.RegularClose },
	FieldChange:                func(p *PartialQuote) *float64 { return p.Change },
	FieldChangePercent:         func(p *PartialQuote) *float64 { return p.ChangePercent },
	FieldExtendedChange:        func(p *PartialQuote) *float64 { return p.ExtendedChange },
	FieldExtendedChangePercent: func(p *PartialQuote) *float64 { return p.ExtendedChangePercent },
	FieldVolume:                func(p *PartialQuote) *float64 { return p.Volume },
	FieldExtendedVolume:        func(p *PartialQuote) *float64 { return p.ExtendedVolume },
	FieldAverageVolume:         func(p *PartialQuote) *float64 { return p.AverageVolume },
	FieldHigh:                  func(p *PartialQuote) *float64 { return p.High },
	FieldLow:                   func(p *PartialQuote) *float64 { return p.Low },
	FieldOpen:                  func(p *PartialQuote) *float64 { return p.Open },
}

// Field returns the value stored under f, or nil for unknown keys.
func (p *PartialQuote) Field(f QuoteField) *float64 {
	get, ok := fieldAccessors[f]
	if !ok {
		return nil
	}
	return get(p)
}

// Fields returns the values for fs in order, ready for a waterfall.
func (p *PartialQuote) Fields(fs []QuoteField) []*float64 {
	out := make([]*float64, 0, len(fs))
	for _, f := range fs {
		out = append(out, p.Field(f))
	}
	return out
}

// Float returns a pointer to v. Adapters use it to mark a field as reported.
func Float(v float64) *float64 { return &v }

// FloatIf returns a pointer to v, or nil when ok is false.
func FloatIf(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}
