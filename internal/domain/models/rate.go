package models

// RatePoint represents one quoted exchange rate against the EUR base.
//
// Fields:
//   - Symbol: the currency pair in "EUR/<quote>" form (e.g., "EUR/USD").
//   - Rate: units of the quote currency per one EUR.
//   - Date: the date the provider priced, in YYYY-MM-DD format. For range
//     queries this is the date reported by the provider, which may differ
//     from the requested date around market holidays.
//   - Equals: the converted amount as a fixed two-decimal string. Only set
//     by the conversion operation; empty otherwise.
//
// This model is returned by the API for /range, /convert and /historical.
type RatePoint struct {
	Symbol string  `json:"symbol" example:"EUR/USD"`
	Rate   float64 `json:"rate" example:"1.0876"`
	Date   string  `json:"date" example:"2024-01-02"`
	Equals string  `json:"equals,omitempty" example:"10.88"`
}
