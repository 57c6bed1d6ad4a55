package usecase

import (
	"context"

	"cotacao_service/internal/domain/entities"
	"cotacao_service/internal/domain/normalize"
	"cotacao_service/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

// HistoricalPriceResolver finds the last approved price of a product among
// concluded scheduled purchases. A miss is a nil result, not an error.
type HistoricalPriceResolver struct {
	repo   interfaces.ISavingRepository
	logger *logrus.Logger
}

func NewHistoricalPriceResolver(repo interfaces.ISavingRepository, logger *logrus.Logger) *HistoricalPriceResolver {
	return &HistoricalPriceResolver{repo: repo, logger: logger}
}

// Resolve matches productName case, accent and width insensitively. It
// issues one lookup and never retries; storage errors propagate unchanged.
func (r *HistoricalPriceResolver) Resolve(ctx context.Context, productName string) (*entities.HistoricalPrice, error) {
	key := normalize.NameKey(productName)
	if key == "" {
		return nil, nil
	}

	price, found, err := r.repo.FindLatestApproved(ctx, key)
	if err != nil {
		r.logger.WithFields(logrus.Fields{"name_key": key}).WithError(err).Error("[history][usecase] lookup failed")
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &price, nil
}
