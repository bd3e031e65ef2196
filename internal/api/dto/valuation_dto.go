package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ValuationRequest payload for the online valuation form.
type ValuationRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Address      string  `json:"address"`
	Neighborhood string  `json:"neighborhood"`
	AreaM2       float64 `json:"area_m2"`
	Rooms        int     `json:"rooms"`
	Condition    string  `json:"condition"`
}

// Validate enforces the valuation form contract.
func (r ValuationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Address, validation.Required),
		validation.Field(&r.AreaM2, validation.Min(0.0)),
		validation.Field(&r.Rooms, validation.Min(0)),
	)
}

// ValuationResponse is the flow outcome.
type ValuationResponse struct {
	Valuation string `json:"valuation"`
	LeadID    string `json:"lead_id"`
	EmailSent bool   `json:"email_sent"`
}
