package entities

// QuotationStatus is the closed set of workflow states of a quotation.
//
// Status strings are persisted as-is; ParseQuotationStatus rejects anything
// outside the set so unknown values never reach the transition table.
type QuotationStatus string

const (
	QuotationStatusPending          QuotationStatus = "pending"
	QuotationStatusScheduledReview  QuotationStatus = "scheduled_review"
	QuotationStatusRenegotiation    QuotationStatus = "renegotiation"
	QuotationStatusSupervisorReview QuotationStatus = "supervisor_review"
	QuotationStatusAwaitingApproval QuotationStatus = "awaiting_approval"
	QuotationStatusApproved         QuotationStatus = "approved"
	QuotationStatusRejected         QuotationStatus = "rejected"
)

// QuotationStatuses lists every status in workflow order.
var QuotationStatuses = []QuotationStatus{
	QuotationStatusPending,
	QuotationStatusScheduledReview,
	QuotationStatusRenegotiation,
	QuotationStatusSupervisorReview,
	QuotationStatusAwaitingApproval,
	QuotationStatusApproved,
	QuotationStatusRejected,
}

func ParseQuotationStatus(s string) (QuotationStatus, bool) {
	for _, st := range QuotationStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// IsTerminal reports whether no further transition can leave the status.
func (s QuotationStatus) IsTerminal() bool {
	switch s {
	case QuotationStatusApproved, QuotationStatusRejected:
		return true
	}
	return false
}

// ProductsEditable reports whether products and suppliers may still change.
func (s QuotationStatus) ProductsEditable() bool {
	return s == QuotationStatusPending
}

// PricesEditable reports whether the buyer may still change line prices.
func (s QuotationStatus) PricesEditable() bool {
	return s == QuotationStatusPending || s == QuotationStatusRenegotiation
}

// Action is a workflow command issued by an actor.
type Action string

const (
	ActionSubmit               Action = "submit"
	ActionForward              Action = "forward"
	ActionRequestRenegotiation Action = "request_renegotiation"
	ActionResubmit             Action = "resubmit"
	ActionApprove              Action = "approve"
	ActionReject               Action = "reject"
)

var Actions = []Action{
	ActionSubmit,
	ActionForward,
	ActionRequestRenegotiation,
	ActionResubmit,
	ActionApprove,
	ActionReject,
}

func ParseAction(s string) (Action, bool) {
	for _, a := range Actions {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}
