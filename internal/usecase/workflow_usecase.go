package usecase

import (
	"context"
	"strings"
	"time"

	"cotacao_service/internal/domain/approval"
	"cotacao_service/internal/domain/entities"
	"cotacao_service/internal/domain/saving"
	"cotacao_service/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

// TransitionResult is the quotation after a committed transition. Saving is
// set only for approvals.
type TransitionResult struct {
	Quotation entities.Quotation
	Saving    *entities.SavingRecord
}

//go:generate mockgen -source=workflow_usecase.go -destination=../adapter/http/handlers/mocks/workflow_usecase_mock.go -package=mocks

// IWorkflowUseCase drives the approval state machine.
type IWorkflowUseCase interface {
	Transition(ctx context.Context, actor entities.Actor, quotationID string, decision entities.ApprovalDecision) (TransitionResult, error)
	AllowedActions(ctx context.Context, actor entities.Actor, quotationID string) ([]entities.Action, error)
}

type WorkflowUseCase struct {
	quotations interfaces.IQuotationRepository
	savings    interfaces.ISavingRepository
	logger     *logrus.Logger
	now        func() time.Time
}

var _ IWorkflowUseCase = (*WorkflowUseCase)(nil)

func NewWorkflowUseCase(quotations interfaces.IQuotationRepository, savings interfaces.ISavingRepository, logger *logrus.Logger) *WorkflowUseCase {
	return &WorkflowUseCase{quotations: quotations, savings: savings, logger: logger, now: time.Now}
}

// Transition checks the decision against the state machine and commits it
// with a compare-and-swap on the current status. Approvals write the status
// and the saving record in a single atomic unit. Nothing is written when any
// step fails.
func (u *WorkflowUseCase) Transition(ctx context.Context, actor entities.Actor, quotationID string, decision entities.ApprovalDecision) (TransitionResult, error) {
	if err := validActor(actor); err != nil {
		return TransitionResult{}, err
	}
	q, err := u.load(ctx, quotationID)
	if err != nil {
		return TransitionResult{}, err
	}

	log := u.logger.WithFields(logrus.Fields{
		"quotation_id": q.ID,
		"action":       decision.Action,
		"actor_id":     actor.ID,
		"actor_role":   actor.Role,
		"from":         q.Status,
	})

	next, err := approval.Transition(q, decision.Action, actor, decision.Reason)
	if err != nil {
		log.WithError(err).Info("[workflow][usecase] transition refused")
		return TransitionResult{}, err
	}

	now := u.now().UTC()
	change := entities.StatusChange{
		QuotationID: q.ID,
		From:        q.Status,
		To:          next,
		Reason:      strings.TrimSpace(decision.Reason),
		NewRound:    next == entities.QuotationStatusRenegotiation,
		At:          now,
	}

	if next == entities.QuotationStatusApproved {
		rec, err := saving.BuildSavingRecord(q, actor, decision.Selection, now)
		if err != nil {
			log.WithError(err).Info("[workflow][usecase] invalid approval selection")
			return TransitionResult{}, err
		}
		if err := u.savings.CreateOnApproval(ctx, rec, change); err != nil {
			log.WithError(err).Warn("[workflow][usecase] approval not committed")
			return TransitionResult{}, err
		}
		q.Status = next
		q.StatusReason = change.Reason
		q.Version++
		q.UpdatedAt = now
		log.WithFields(logrus.Fields{
			"saving_id": rec.ID,
			"economy":   rec.Economy.StringFixed(2),
		}).Info("[workflow][usecase] quotation approved")
		return TransitionResult{Quotation: q, Saving: &rec}, nil
	}

	updated, err := u.quotations.UpdateStatus(ctx, change)
	if err != nil {
		log.WithError(err).Warn("[workflow][usecase] transition not committed")
		return TransitionResult{}, err
	}
	log.WithField("to", next).Info("[workflow][usecase] transition committed")
	return TransitionResult{Quotation: updated}, nil
}

func (u *WorkflowUseCase) AllowedActions(ctx context.Context, actor entities.Actor, quotationID string) ([]entities.Action, error) {
	if err := validActor(actor); err != nil {
		return nil, err
	}
	q, err := u.load(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	return approval.AllowedActions(q, actor), nil
}

func (u *WorkflowUseCase) load(ctx context.Context, id string) (entities.Quotation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quotation{}, ErrInvalidQuotationID
	}
	q, err := u.quotations.GetByID(ctx, id)
	if err != nil {
		return entities.Quotation{}, err
	}
	if q.ID == "" {
		return entities.Quotation{}, ErrQuotationNotFound
	}
	return q, nil
}
