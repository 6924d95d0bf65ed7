package dto

import (
	"github.com/shipwise/shipwise/internal/domain/session"
	"github.com/shipwise/shipwise/internal/service"
	"github.com/shipwise/shipwise/internal/types"
	"github.com/shipwise/shipwise/internal/validator"
	"github.com/shopspring/decimal"
)

// CreateSessionRequest carries a new session document.
type CreateSessionRequest struct {
	Name     string `json:"name" validate:"required"`
	Currency string `json:"currency" validate:"required,len=3"`

	Products      []session.Product       `json:"products"`
	Offers        []*session.Offer        `json:"offers"`
	Bundles       []*session.Bundle       `json:"bundles"`
	DeliveryRules []*session.DeliveryRule `json:"delivery_rules"`
	Forwarders    []*session.Forwarder    `json:"forwarders"`
}

func (r *CreateSessionRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateSessionRequest) ToSession() *session.Session {
	return &session.Session{
		Name:          r.Name,
		Currency:      r.Currency,
		Products:      r.Products,
		Offers:        r.Offers,
		Bundles:       r.Bundles,
		DeliveryRules: r.DeliveryRules,
		Forwarders:    r.Forwarders,
	}
}

// SessionResponse wraps a session document.
type SessionResponse struct {
	*session.Session
}

// ListSessionsResponse is the paginated-less listing of sessions.
type ListSessionsResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Total    int               `json:"total"`
}

// ConvertSessionRequest asks for a session to be normalized to one currency.
// Rates read target→source: rates[src] is the number of src units one target
// unit buys.
type ConvertSessionRequest struct {
	TargetCurrency string                     `json:"target_currency" validate:"required,len=3"`
	Rates          map[string]decimal.Decimal `json:"rates" validate:"required"`
}

func (r *ConvertSessionRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *ConvertSessionRequest) RateMap() types.RateMap {
	return types.RateMap(r.Rates)
}

// ProvisionResponse reports default-rule provisioning over a session.
type ProvisionResponse struct {
	Session *session.Session        `json:"session"`
	Added   []*session.DeliveryRule `json:"added"`
	HasNew  bool                    `json:"has_new"`
}

func NewProvisionResponse(sess *session.Session, result service.ProvisionResult) ProvisionResponse {
	return ProvisionResponse{
		Session: sess,
		Added:   result.Added,
		HasNew:  result.HasNew,
	}
}
