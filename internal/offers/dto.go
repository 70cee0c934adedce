package offers

import (
	"time"

	"offerfit-backend/internal/offer"
)

// OfferResponse is the outward-facing representation of a stored offer.
// Complete and MissingFields let the form disable evaluation until every
// required answer is in.
type OfferResponse struct {
	OfferID       string              `json:"offerId"`
	Name          string              `json:"name"`
	Config        offer.Configuration `json:"config"`
	Complete      bool                `json:"complete"`
	MissingFields []string            `json:"missingFields,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

func toResponse(o Offer) OfferResponse {
	return OfferResponse{
		OfferID:       o.ID,
		Name:          o.Name,
		Config:        o.Config,
		Complete:      o.Config.Complete(),
		MissingFields: o.Config.MissingFields(),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
