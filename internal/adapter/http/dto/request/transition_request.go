package request

import (
	"errors"
	"strings"

	"cotacao_service/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var ErrUnknownAction = errors.New("unknown action")

type SelectedLineRequest struct {
	LineOfferID       string          `json:"line_offer_id" binding:"required"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Quantity          decimal.Decimal `json:"quantity"`
	BaselineUnitPrice decimal.Decimal `json:"baseline_unit_price"`
}

// TransitionRequest asks the workflow to apply an action. Selection is only
// read for approve.
type TransitionRequest struct {
	Action    string                `json:"action" binding:"required"`
	Reason    string                `json:"reason"`
	Selection []SelectedLineRequest `json:"selection" binding:"omitempty,dive"`
}

func (r TransitionRequest) ToDecision() (entities.ApprovalDecision, error) {
	name := strings.ToLower(strings.TrimSpace(r.Action))
	if name == "renegotiate" {
		name = string(entities.ActionRequestRenegotiation)
	}
	action, ok := entities.ParseAction(name)
	if !ok {
		return entities.ApprovalDecision{}, ErrUnknownAction
	}
	dec := entities.ApprovalDecision{Action: action, Reason: r.Reason}
	for _, s := range r.Selection {
		dec.Selection = append(dec.Selection, entities.SelectedLine{
			LineOfferID:       strings.TrimSpace(s.LineOfferID),
			UnitPrice:         s.UnitPrice,
			Quantity:          s.Quantity,
			BaselineUnitPrice: s.BaselineUnitPrice,
		})
	}
	return dec, nil
}
