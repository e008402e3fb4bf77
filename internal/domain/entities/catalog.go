package entities

import "github.com/shopspring/decimal"

// CarpetType identifies an entry of the carpet type catalog.
type CarpetType string

const (
	CarpetNormal  CarpetType = "normal"
	CarpetShaggy  CarpetType = "shaggy"
	CarpetSilk    CarpetType = "silk"
	CarpetAntique CarpetType = "antique"
)

// CatalogEntry describes a carpet type: a human readable name and the
// cleaning price per square meter.
type CatalogEntry struct {
	Name      string
	UnitPrice decimal.Decimal
}

// Catalog is the single shared carpet type table. Every price
// computation in the application goes through it.
var Catalog = map[CarpetType]CatalogEntry{
	CarpetNormal:  {Name: "Normal Halı", UnitPrice: decimal.NewFromInt(100)},
	CarpetShaggy:  {Name: "Shaggy Halı", UnitPrice: decimal.NewFromInt(130)},
	CarpetSilk:    {Name: "İpek Halı", UnitPrice: decimal.NewFromInt(250)},
	CarpetAntique: {Name: "Antika Halı", UnitPrice: decimal.NewFromInt(500)},
}

// UnitPrice returns the per square meter price for the carpet type.
// The second return value is false for unknown types.
func UnitPrice(t CarpetType) (decimal.Decimal, bool) {
	entry, ok := Catalog[t]
	return entry.UnitPrice, ok
}
