package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/connect-inmobiliaria/crm-service/internal/domain"
)

// PublishPropertyRequest payload for the back-office publish form.
type PublishPropertyRequest struct {
	Title       string                 `json:"title"`
	Price       int64                  `json:"price"`
	Type        domain.PropertyType    `json:"type"`
	Transaction domain.TransactionType `json:"transaction"`
	Latitude    float64                `json:"latitude"`
	Longitude   float64                `json:"longitude"`
	Address     string                 `json:"address"`
	Description string                 `json:"description"`
	Images      []string               `json:"images"`
	Features    []string               `json:"features"`
	ParcelID    string                 `json:"parcel_id"`
}

// Validate enforces the publish form contract.
func (r PublishPropertyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&r.Price, validation.Required, validation.Min(1)),
		validation.Field(&r.Type, validation.Required),
		validation.Field(&r.Transaction, validation.Required),
		validation.Field(&r.Address, validation.Required),
	)
}

// CadastralResponse is the parcel record attached to a listing.
type CadastralResponse struct {
	ParcelID      string  `json:"parcel_id"`
	AssessedValue int64   `json:"assessed_value"`
	LandUse       string  `json:"land_use,omitempty"`
	AreaM2        float64 `json:"area_m2"`
	Verified      bool    `json:"verified"`
	Source        string  `json:"source,omitempty"`
}

// PropertyResponse response.
type PropertyResponse struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Price       int64                  `json:"price"`
	Type        domain.PropertyType    `json:"type"`
	Transaction domain.TransactionType `json:"transaction"`
	Latitude    float64                `json:"latitude"`
	Longitude   float64                `json:"longitude"`
	Address     string                 `json:"address"`
	Description string                 `json:"description,omitempty"`
	Images      []string               `json:"images"`
	Features    []string               `json:"features"`
	Cadastral   *CadastralResponse     `json:"cadastral,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}
