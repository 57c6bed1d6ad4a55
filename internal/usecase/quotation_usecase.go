package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cotacao_service/internal/domain/comparison"
	"cotacao_service/internal/domain/consolidation"
	"cotacao_service/internal/domain/entities"
	"cotacao_service/internal/usecase/interfaces"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// CreateQuotationInput is the buyer's request to open a quotation.
type CreateQuotationInput struct {
	DeliveryLocation string                `validate:"required"`
	PurchaseType     entities.PurchaseType `validate:"required,oneof=scheduled emergency tag"`
	EmergencyReason  string                `validate:"required_if=PurchaseType emergency"`
	Justification    string
	Rows             []entities.RawRow
}

// SupplierInput adds a supplier with its supplier-level terms.
type SupplierInput struct {
	SupplierID      string               `validate:"required"`
	SupplierName    string               `validate:"required"`
	PaymentTermDays int                  `validate:"gte=0"`
	FreightType     entities.FreightType `validate:"omitempty,oneof=CIF FOB"`
	FreightValue    decimal.Decimal
}

// LineOfferUpdate carries the editable fields of a line offer.
type LineOfferUpdate struct {
	UnitPrice         decimal.Decimal
	DeliveryLeadDays  int `validate:"gte=0"`
	Difal             decimal.Decimal
	IPI               decimal.Decimal
	PreviousUnitPrice decimal.Decimal
}

// ImportResult reports what an import did to the product list.
type ImportResult struct {
	Quotation              entities.Quotation
	RowsRead               int
	DuplicatesConsolidated int
}

//go:generate mockgen -source=quotation_usecase.go -destination=../adapter/http/handlers/mocks/quotation_usecase_mock.go -package=mocks

// IQuotationUseCase exposes quotation editing and comparison.
//
// Products and suppliers can only change while the quotation is pending;
// line prices can also change during renegotiation.
type IQuotationUseCase interface {
	Create(ctx context.Context, actor entities.Actor, in CreateQuotationInput) (entities.Quotation, error)
	GetByID(ctx context.Context, id string) (entities.Quotation, error)
	ImportProducts(ctx context.Context, actor entities.Actor, id string, rows []entities.RawRow) (ImportResult, error)
	AddSupplier(ctx context.Context, actor entities.Actor, id string, in SupplierInput) (entities.Quotation, error)
	UpdateLineOffer(ctx context.Context, actor entities.Actor, id, supplierID, lineID string, upd LineOfferUpdate) (entities.Quotation, error)
	Compare(ctx context.Context, id string) (comparison.ComparisonReport, error)
}

type QuotationUseCase struct {
	repo     interfaces.IQuotationRepository
	resolver *HistoricalPriceResolver
	validate *validator.Validate
	logger   *logrus.Logger
	now      func() time.Time
}

var _ IQuotationUseCase = (*QuotationUseCase)(nil)

func NewQuotationUseCase(repo interfaces.IQuotationRepository, resolver *HistoricalPriceResolver, logger *logrus.Logger) *QuotationUseCase {
	return &QuotationUseCase{
		repo:     repo,
		resolver: resolver,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

func (u *QuotationUseCase) Create(ctx context.Context, actor entities.Actor, in CreateQuotationInput) (entities.Quotation, error) {
	if err := validActor(actor); err != nil {
		return entities.Quotation{}, err
	}
	if actor.Role != entities.RoleBuyer && actor.Role != entities.RoleAdmin {
		return entities.Quotation{}, fmt.Errorf("%w: only buyers open quotations", ErrForbidden)
	}
	in.DeliveryLocation = strings.TrimSpace(in.DeliveryLocation)
	in.EmergencyReason = strings.TrimSpace(in.EmergencyReason)
	if err := u.validate.Struct(in); err != nil {
		return entities.Quotation{}, fmt.Errorf("%w: %v", entities.ErrValidation, err)
	}

	now := u.now().UTC()
	q := entities.Quotation{
		ID:               uuid.NewString(),
		BuyerID:          actor.ID,
		BuyerName:        actor.Name,
		DeliveryLocation: in.DeliveryLocation,
		PurchaseType:     in.PurchaseType,
		EmergencyReason:  in.EmergencyReason,
		Justification:    strings.TrimSpace(in.Justification),
		Status:           entities.QuotationStatusPending,
		Rounds:           1,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if len(in.Rows) > 0 {
		res, err := consolidation.Consolidate(q.ID, in.Rows)
		if err != nil {
			return entities.Quotation{}, err
		}
		q.Products = res.Products
	}

	created, err := u.repo.Create(ctx, q)
	if err != nil {
		return entities.Quotation{}, err
	}
	u.logger.WithFields(logrus.Fields{
		"quotation_id": created.ID,
		"buyer_id":     created.BuyerID,
		"products":     len(created.Products),
	}).Info("[quotation][usecase] created")
	return created, nil
}

func (u *QuotationUseCase) GetByID(ctx context.Context, id string) (entities.Quotation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quotation{}, ErrInvalidQuotationID
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quotation{}, err
	}
	if q.ID == "" {
		return entities.Quotation{}, ErrQuotationNotFound
	}
	return q, nil
}

// ImportProducts replaces the product list with the consolidated rows.
// Product ids derive from the quotation id, so re-importing the same rows
// keeps the ids and every supplier keeps its prices for unchanged products.
func (u *QuotationUseCase) ImportProducts(ctx context.Context, actor entities.Actor, id string, rows []entities.RawRow) (ImportResult, error) {
	q, err := u.loadEditable(ctx, actor, id, entities.QuotationStatus.ProductsEditable)
	if err != nil {
		return ImportResult{}, err
	}
	if len(rows) == 0 {
		return ImportResult{}, fmt.Errorf("%w: import has no rows", entities.ErrValidation)
	}

	res, err := consolidation.Consolidate(q.ID, rows)
	if err != nil {
		return ImportResult{}, err
	}

	m := comparison.BuildOfferMatrix(res.Products, q.Suppliers)
	q.Products = m.Products
	q.Suppliers = m.Suppliers

	saved, err := u.save(ctx, q)
	if err != nil {
		return ImportResult{}, err
	}
	u.logger.WithFields(logrus.Fields{
		"quotation_id": q.ID,
		"rows":         len(rows),
		"products":     len(res.Products),
		"duplicates":   res.DuplicatesConsolidated(),
	}).Info("[quotation][usecase] products imported")
	return ImportResult{Quotation: saved, RowsRead: len(rows), DuplicatesConsolidated: res.DuplicatesConsolidated()}, nil
}

func (u *QuotationUseCase) AddSupplier(ctx context.Context, actor entities.Actor, id string, in SupplierInput) (entities.Quotation, error) {
	in.SupplierID = strings.TrimSpace(in.SupplierID)
	in.SupplierName = strings.TrimSpace(in.SupplierName)
	if err := u.validate.Struct(in); err != nil {
		return entities.Quotation{}, fmt.Errorf("%w: %v", entities.ErrValidation, err)
	}
	if in.FreightValue.IsNegative() {
		return entities.Quotation{}, fmt.Errorf("%w: freight value must not be negative", entities.ErrValidation)
	}

	q, err := u.loadEditable(ctx, actor, id, entities.QuotationStatus.ProductsEditable)
	if err != nil {
		return entities.Quotation{}, err
	}
	if q.FindSupplier(in.SupplierID) >= 0 {
		return entities.Quotation{}, ErrSupplierExists
	}

	q.Suppliers = append(q.Suppliers, entities.SupplierOffer{
		SupplierID:      in.SupplierID,
		SupplierName:    in.SupplierName,
		PaymentTermDays: in.PaymentTermDays,
		FreightType:     in.FreightType,
		FreightValue:    in.FreightValue,
		Lines:           comparison.NewSupplierLines(q.Products, in.SupplierID),
	})
	return u.save(ctx, q)
}

func (u *QuotationUseCase) UpdateLineOffer(ctx context.Context, actor entities.Actor, id, supplierID, lineID string, upd LineOfferUpdate) (entities.Quotation, error) {
	if err := u.validate.Struct(upd); err != nil {
		return entities.Quotation{}, fmt.Errorf("%w: %v", entities.ErrValidation, err)
	}
	for _, v := range []decimal.Decimal{upd.UnitPrice, upd.Difal, upd.IPI, upd.PreviousUnitPrice} {
		if v.IsNegative() {
			return entities.Quotation{}, fmt.Errorf("%w: prices and taxes must not be negative", entities.ErrValidation)
		}
	}

	q, err := u.loadEditable(ctx, actor, id, entities.QuotationStatus.PricesEditable)
	if err != nil {
		return entities.Quotation{}, err
	}
	si := q.FindSupplier(strings.TrimSpace(supplierID))
	if si < 0 {
		return entities.Quotation{}, ErrSupplierNotFound
	}

	// Copy the supplier so the edit cannot leak into another supplier's lines.
	supplier := q.Suppliers[si].Clone()
	found := false
	for i := range supplier.Lines {
		if supplier.Lines[i].ID != lineID {
			continue
		}
		l := &supplier.Lines[i]
		l.DeliveryLeadDays = upd.DeliveryLeadDays
		l.Taxes = entities.TaxAddOns{Difal: upd.Difal, IPI: upd.IPI}
		l.PreviousUnitPrice = upd.PreviousUnitPrice
		l.SetUnitPrice(upd.UnitPrice)
		found = true
		break
	}
	if !found {
		return entities.Quotation{}, ErrLineOfferNotFound
	}
	q.Suppliers = append([]entities.SupplierOffer(nil), q.Suppliers...)
	q.Suppliers[si] = supplier
	return u.save(ctx, q)
}

func (u *QuotationUseCase) Compare(ctx context.Context, id string) (comparison.ComparisonReport, error) {
	q, err := u.GetByID(ctx, id)
	if err != nil {
		return comparison.ComparisonReport{}, err
	}
	var lookup comparison.HistoricalLookup
	if u.resolver != nil {
		lookup = u.resolver.Resolve
	}
	return comparison.RankOffers(ctx, comparison.MatrixFromQuotation(q), lookup)
}

func (u *QuotationUseCase) loadEditable(ctx context.Context, actor entities.Actor, id string, editable func(entities.QuotationStatus) bool) (entities.Quotation, error) {
	if err := validActor(actor); err != nil {
		return entities.Quotation{}, err
	}
	q, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Quotation{}, err
	}
	if actor.Role != entities.RoleAdmin && (actor.Role != entities.RoleBuyer || actor.ID != q.BuyerID) {
		return entities.Quotation{}, fmt.Errorf("%w: actor %s cannot edit quotation %s", ErrForbidden, actor.ID, q.ID)
	}
	if !editable(q.Status) {
		return entities.Quotation{}, fmt.Errorf("%w (%s)", ErrQuotationLocked, q.Status)
	}
	return q, nil
}

func (u *QuotationUseCase) save(ctx context.Context, q entities.Quotation) (entities.Quotation, error) {
	expected := q.Version
	q.Version++
	q.UpdatedAt = u.now().UTC()

	saved, err := u.repo.Replace(ctx, q, expected)
	if err != nil {
		if errors.Is(err, entities.ErrConcurrentModification) {
			u.logger.WithFields(logrus.Fields{"quotation_id": q.ID, "version": expected}).Warn("[quotation][usecase] stale version")
		}
		return entities.Quotation{}, err
	}
	return saved, nil
}

func validActor(actor entities.Actor) error {
	if strings.TrimSpace(actor.ID) == "" {
		return ErrInvalidActor
	}
	if _, ok := entities.ParseRole(string(actor.Role)); !ok {
		return ErrInvalidActor
	}
	return nil
}
