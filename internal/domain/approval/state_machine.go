// Package approval holds the role-gated quotation workflow.
package approval

import (
	"fmt"
	"strings"

	"cotacao_service/internal/domain/entities"
)

type edge struct {
	from   entities.QuotationStatus
	action entities.Action
}

type rule struct {
	to        entities.QuotationStatus
	roles     []entities.Role
	ownerOnly bool
}

// table is the complete set of legal transitions. Anything absent is an
// ErrInvalidStateTransition.
var table = map[edge]rule{
	{entities.QuotationStatusPending, entities.ActionSubmit}: {
		to: entities.QuotationStatusSupervisorReview, roles: []entities.Role{entities.RoleBuyer}, ownerOnly: true,
	},
	{entities.QuotationStatusSupervisorReview, entities.ActionForward}: {
		to: entities.QuotationStatusAwaitingApproval, roles: []entities.Role{entities.RoleSupervisor, entities.RoleAdmin},
	},
	{entities.QuotationStatusSupervisorReview, entities.ActionRequestRenegotiation}: {
		to: entities.QuotationStatusRenegotiation, roles: []entities.Role{entities.RoleSupervisor, entities.RoleAdmin},
	},
	{entities.QuotationStatusRenegotiation, entities.ActionResubmit}: {
		to: entities.QuotationStatusSupervisorReview, roles: []entities.Role{entities.RoleBuyer}, ownerOnly: true,
	},
	{entities.QuotationStatusAwaitingApproval, entities.ActionApprove}: {
		to: entities.QuotationStatusApproved, roles: []entities.Role{entities.RoleManager, entities.RoleAdmin},
	},
	{entities.QuotationStatusAwaitingApproval, entities.ActionReject}: {
		to: entities.QuotationStatusRejected, roles: []entities.Role{entities.RoleManager, entities.RoleAdmin},
	},
	{entities.QuotationStatusAwaitingApproval, entities.ActionRequestRenegotiation}: {
		to: entities.QuotationStatusRenegotiation, roles: []entities.Role{entities.RoleManager, entities.RoleAdmin},
	},
}

// Transition validates action by actor against q and returns the next status.
// It never mutates q; committing the change is the caller's job.
func Transition(q entities.Quotation, action entities.Action, actor entities.Actor, reason string) (entities.QuotationStatus, error) {
	if q.Status.IsTerminal() {
		return "", fmt.Errorf("%w: quotation is %s", entities.ErrInvalidStateTransition, q.Status)
	}

	r, ok := table[edge{q.Status, action}]
	if !ok {
		return "", fmt.Errorf("%w: %s is not allowed while %s", entities.ErrInvalidStateTransition, action, q.Status)
	}
	if !hasRole(r.roles, actor.Role) {
		return "", fmt.Errorf("%w: role %q cannot %s a quotation in %s", entities.ErrInvalidStateTransition, actor.Role, action, q.Status)
	}
	if r.ownerOnly && actor.Role != entities.RoleAdmin && actor.ID != q.BuyerID {
		return "", fmt.Errorf("%w: actor %s does not own quotation %s", entities.ErrInvalidStateTransition, actor.ID, q.ID)
	}

	switch action {
	case entities.ActionReject, entities.ActionRequestRenegotiation:
		if strings.TrimSpace(reason) == "" {
			return "", fmt.Errorf("%w: a reason is required to %s", entities.ErrValidation, action)
		}
	case entities.ActionSubmit:
		if q.PurchaseType == entities.PurchaseTypeEmergency && strings.TrimSpace(q.EmergencyReason) == "" {
			return "", fmt.Errorf("%w: emergency purchases require an emergency reason", entities.ErrValidation)
		}
		if len(q.Suppliers) == 0 || len(q.Products) == 0 {
			return "", fmt.Errorf("%w: quotation has no products or suppliers", entities.ErrIncompleteOffer)
		}
		if n := q.UnpricedLines(); n > 0 {
			return "", fmt.Errorf("%w: %d line offer(s) without price", entities.ErrIncompleteOffer, n)
		}
	}

	return r.to, nil
}

// AllowedActions lists the actions actor may attempt on q, in declaration
// order. Validation of reasons and prices still happens in Transition.
func AllowedActions(q entities.Quotation, actor entities.Actor) []entities.Action {
	var out []entities.Action
	for _, a := range entities.Actions {
		r, ok := table[edge{q.Status, a}]
		if !ok || !hasRole(r.roles, actor.Role) {
			continue
		}
		if r.ownerOnly && actor.Role != entities.RoleAdmin && actor.ID != q.BuyerID {
			continue
		}
		out = append(out, a)
	}
	return out
}

func hasRole(roles []entities.Role, role entities.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
