package interfaces

import (
	"context"
	"cotacao_service/internal/domain/entities"
)

//go:generate mockgen -source=quotation_repository_interface.go -destination=mocks/quotation_repository_mock.go -package=mock_interfaces

// IQuotationRepository abstracts DynamoDB persistence for Quotation.
//
// The workflow must be able to:
//   - create a quotation and read it back by id
//   - replace an editable quotation guarded by its version (import, suppliers, prices)
//   - move a quotation between statuses with a compare-and-swap on the current status
//
// A missing quotation is reported as a zero-value entity with nil error.
// Failed version/status conditions return entities.ErrConcurrentModification.
type IQuotationRepository interface {
	Create(ctx context.Context, q entities.Quotation) (entities.Quotation, error)
	GetByID(ctx context.Context, id string) (entities.Quotation, error)
	Replace(ctx context.Context, q entities.Quotation, expectedVersion int) (entities.Quotation, error)
	UpdateStatus(ctx context.Context, change entities.StatusChange) (entities.Quotation, error)
}
