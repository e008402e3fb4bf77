package response

import "github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"

// Cities lists the served cities.
type Cities struct {
	Cities []string `json:"cities"`
}

// Districts lists the districts of one served city.
type Districts struct {
	City      string   `json:"city"`
	Districts []string `json:"districts"`
}

// Locations is the whole city to districts table.
type Locations struct {
	Cities    []string            `json:"cities"`
	Districts map[string][]string `json:"districts"`
}

// PriceEntry is one row of the public price list.
type PriceEntry struct {
	CarpetType entities.CarpetType `json:"carpet_type"`
	Name       string              `json:"name"`
	UnitPrice  float64             `json:"unit_price"`
}

// Quote is the price estimation response.
type Quote struct {
	Lines      []QuoteLine `json:"lines"`
	TotalArea  float64     `json:"total_area"`
	TotalPrice float64     `json:"total_price"`
}

type QuoteLine struct {
	CarpetType entities.CarpetType `json:"carpet_type"`
	Area       float64             `json:"area"`
	Price      float64             `json:"price"`
}

func NewQuoteFromEntity(e entities.Quote) *Quote {
	quote := &Quote{
		Lines:      make([]QuoteLine, 0, len(e.Lines)),
		TotalArea:  e.TotalArea,
		TotalPrice: e.TotalPrice.InexactFloat64(),
	}

	for _, line := range e.Lines {
		quote.Lines = append(quote.Lines, QuoteLine{
			CarpetType: line.Type,
			Area:       line.Area,
			Price:      line.Price.InexactFloat64(),
		})
	}

	return quote
}

type Settings struct {
	WhatsAppNumber  string `json:"whatsapp_number"`
	WhatsAppMessage string `json:"whatsapp_message"`
}

func NewSettingsFromEntity(e *entities.Settings) *Settings {
	return &Settings{
		WhatsAppNumber:  e.WhatsAppNumber,
		WhatsAppMessage: e.WhatsAppMessage,
	}
}
