package interfaces

import (
	"context"
	"cotacao_service/internal/domain/entities"
)

//go:generate mockgen -source=saving_repository_interface.go -destination=mocks/saving_repository_mock.go -package=mock_interfaces

// ISavingRepository abstracts DynamoDB persistence for SavingRecord.
//
// CreateOnApproval writes the status change, the record header and every item
// as one atomic unit: either all of them are stored or none is.
// FindLatestApproved is a single bounded lookup by name key; found=false means
// there is no history for the product.
type ISavingRepository interface {
	CreateOnApproval(ctx context.Context, rec entities.SavingRecord, change entities.StatusChange) error
	GetByQuotationID(ctx context.Context, quotationID string) (entities.SavingRecord, error)
	FindLatestApproved(ctx context.Context, nameKey string) (price entities.HistoricalPrice, found bool, err error)
}
