package usecase

import (
	"context"
	"strings"

	"cotacao_service/internal/domain/entities"
	"cotacao_service/internal/usecase/interfaces"
)

//go:generate mockgen -source=saving_usecase.go -destination=../adapter/http/handlers/mocks/saving_usecase_mock.go -package=mocks

// ISavingUseCase exposes the archived economy records.
type ISavingUseCase interface {
	GetByQuotationID(ctx context.Context, quotationID string) (entities.SavingRecord, error)
	ResolveHistoricalPrice(ctx context.Context, productName string) (*entities.HistoricalPrice, error)
}

type SavingUseCase struct {
	repo     interfaces.ISavingRepository
	resolver *HistoricalPriceResolver
}

var _ ISavingUseCase = (*SavingUseCase)(nil)

func NewSavingUseCase(repo interfaces.ISavingRepository, resolver *HistoricalPriceResolver) *SavingUseCase {
	return &SavingUseCase{repo: repo, resolver: resolver}
}

func (u *SavingUseCase) GetByQuotationID(ctx context.Context, quotationID string) (entities.SavingRecord, error) {
	quotationID = strings.TrimSpace(quotationID)
	if quotationID == "" {
		return entities.SavingRecord{}, ErrInvalidQuotationID
	}

	rec, err := u.repo.GetByQuotationID(ctx, quotationID)
	if err != nil {
		return entities.SavingRecord{}, err
	}
	if rec.ID == "" {
		return entities.SavingRecord{}, ErrSavingNotFound
	}
	return rec, nil
}

func (u *SavingUseCase) ResolveHistoricalPrice(ctx context.Context, productName string) (*entities.HistoricalPrice, error) {
	return u.resolver.Resolve(ctx, productName)
}
