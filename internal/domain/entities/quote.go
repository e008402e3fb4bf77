package entities

import "github.com/shopspring/decimal"

// CarpetItem is a customer declared order line: a carpet type and the
// estimated dimensions in meters. Area is derived at pricing time.
type CarpetItem struct {
	Type   CarpetType `json:"carpet_type"`
	Width  float64    `json:"width"`
	Length float64    `json:"length"`
	Area   float64    `json:"area"`
}

// CarpetEntry is a company measured line: a carpet type and the measured
// area in square meters. Price is filled by the calculator.
type CarpetEntry struct {
	Type  CarpetType      `json:"carpet_type"`
	Area  float64         `json:"area"`
	Price decimal.Decimal `json:"price"`
}

// QuoteLine is one priced entry of a quote.
type QuoteLine struct {
	Type  CarpetType
	Area  float64
	Price decimal.Decimal
}

// Quote is the result of a price computation over a set of carpet lines.
// Totals accumulate without rounding; rounding belongs to presentation.
type Quote struct {
	Lines      []QuoteLine
	TotalArea  float64
	TotalPrice decimal.Decimal
}

// CalculateEstimate prices customer declared lines, deriving each area as
// width times length. Lines with a non-positive dimension are placeholder
// rows and contribute nothing; lines with a carpet type missing from the
// catalog are skipped the same way.
func CalculateEstimate(items []CarpetItem) Quote {
	quote := Quote{Lines: make([]QuoteLine, 0, len(items))}

	for _, item := range items {
		if item.Width <= 0 || item.Length <= 0 {
			continue
		}
		unit, ok := UnitPrice(item.Type)
		if !ok {
			continue
		}

		area := item.Width * item.Length
		price := decimal.NewFromFloat(area).Mul(unit)

		quote.Lines = append(quote.Lines, QuoteLine{Type: item.Type, Area: area, Price: price})
		quote.TotalArea += area
		quote.TotalPrice = quote.TotalPrice.Add(price)
	}

	return quote
}

// CalculateMeasured prices company measured lines with the area given
// directly. Skipping rules match CalculateEstimate.
func CalculateMeasured(entries []CarpetEntry) Quote {
	quote := Quote{Lines: make([]QuoteLine, 0, len(entries))}

	for _, entry := range entries {
		if entry.Area <= 0 {
			continue
		}
		unit, ok := UnitPrice(entry.Type)
		if !ok {
			continue
		}

		price := decimal.NewFromFloat(entry.Area).Mul(unit)

		quote.Lines = append(quote.Lines, QuoteLine{Type: entry.Type, Area: entry.Area, Price: price})
		quote.TotalArea += entry.Area
		quote.TotalPrice = quote.TotalPrice.Add(price)
	}

	return quote
}
