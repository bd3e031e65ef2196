package domain

import "time"

// PropertyType enumerates catalog categories.
type PropertyType string

const (
	PropertyTypeHouse      PropertyType = "Casas"
	PropertyTypeApartment  PropertyType = "Departamentos"
	PropertyTypeLand       PropertyType = "Terrenos"
	PropertyTypeCommercial PropertyType = "Locales Comerciales"
	PropertyTypeOffice     PropertyType = "Oficinas"
)

// TransactionType distinguishes sale from rental listings.
type TransactionType string

const (
	TransactionSale TransactionType = "Venta"
	TransactionRent TransactionType = "Alquiler"
)

// CadastralData carries the parcel record from the provincial registry.
// Verified is false when the values come from the locally-known catalog
// rather than a live lookup.
type CadastralData struct {
	ParcelID      string
	AssessedValue int64
	LandUse       string
	AreaM2        float64
	Verified      bool
	Source        string
}

// Property is the catalog aggregate for a listing.
type Property struct {
	ID          string
	Title       string
	Price       int64
	Type        PropertyType
	Transaction TransactionType
	Latitude    float64
	Longitude   float64
	Address     string
	Description string
	Images      []string
	Features    []string
	Cadastral   CadastralData
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
