package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"cotacao_service/internal/domain/comparison"
	"cotacao_service/internal/domain/consolidation"
	"cotacao_service/internal/domain/entities"
	"cotacao_service/internal/infrastructure/logging"
	mock_interfaces "cotacao_service/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func newQuotationUC(t *testing.T) (*QuotationUseCase, *mock_interfaces.MockIQuotationRepository, *mock_interfaces.MockISavingRepository) {
	ctrl := gomock.NewController(t)
	qr := mock_interfaces.NewMockIQuotationRepository(ctrl)
	sr := mock_interfaces.NewMockISavingRepository(ctrl)
	logger := logging.Discard()
	uc := NewQuotationUseCase(qr, NewHistoricalPriceResolver(sr, logger), logger)
	uc.now = func() time.Time { return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) }
	return uc, qr, sr
}

func echoReplace(t *testing.T, wantVersion int) func(context.Context, entities.Quotation, int) (entities.Quotation, error) {
	return func(_ context.Context, q entities.Quotation, expected int) (entities.Quotation, error) {
		if expected != wantVersion || q.Version != wantVersion+1 {
			t.Fatalf("expected version %d -> %d, got %d -> %d", wantVersion, wantVersion+1, expected, q.Version)
		}
		return q, nil
	}
}

func TestQuotationUseCase_Create(t *testing.T) {
	t.Run("supervisor cannot open quotation", func(t *testing.T) {
		uc, _, _ := newQuotationUC(t)
		_, err := uc.Create(context.Background(), supervisor, CreateQuotationInput{DeliveryLocation: "CD", PurchaseType: entities.PurchaseTypeScheduled})
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("emergency requires reason", func(t *testing.T) {
		uc, _, _ := newQuotationUC(t)
		_, err := uc.Create(context.Background(), buyer, CreateQuotationInput{DeliveryLocation: "CD", PurchaseType: entities.PurchaseTypeEmergency})
		if !errors.Is(err, entities.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("unknown purchase type", func(t *testing.T) {
		uc, _, _ := newQuotationUC(t)
		_, err := uc.Create(context.Background(), buyer, CreateQuotationInput{DeliveryLocation: "CD", PurchaseType: "weekly"})
		if !errors.Is(err, entities.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		uc, qr, _ := newQuotationUC(t)
		qr.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Quotation{}, errors.New("db"))

		_, err := uc.Create(context.Background(), buyer, CreateQuotationInput{DeliveryLocation: "CD", PurchaseType: entities.PurchaseTypeScheduled})
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("consolidates rows", func(t *testing.T) {
		uc, qr, _ := newQuotationUC(t)
		qr.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Quotation{})).DoAndReturn(
			func(_ context.Context, q entities.Quotation) (entities.Quotation, error) {
				if q.ID == "" || q.BuyerID != buyer.ID || q.Status != entities.QuotationStatusPending || q.Version != 1 || q.Rounds != 1 {
					t.Fatalf("unexpected quotation: %+v", q)
				}
				if len(q.Products) != 2 {
					t.Fatalf("expected 2 products, got %+v", q.Products)
				}
				return q, nil
			},
		)

		_, err := uc.Create(context.Background(), buyer, CreateQuotationInput{
			DeliveryLocation: " CD Norte ",
			PurchaseType:     entities.PurchaseTypeScheduled,
			Rows: []entities.RawRow{
				{Name: "Arroz", Quantity: d("5"), Unit: "kg"},
				{Name: "ARROZ", Quantity: d("5"), Unit: "KG"},
				{Name: "Feijão", Quantity: d("4"), Unit: "kg"},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestQuotationUseCase_GetByID(t *testing.T) {
	uc, qr, _ := newQuotationUC(t)

	if _, err := uc.GetByID(context.Background(), "  "); !errors.Is(err, ErrInvalidQuotationID) {
		t.Fatalf("expected ErrInvalidQuotationID, got %v", err)
	}

	qr.EXPECT().GetByID(gomock.Any(), "q-404").Return(entities.Quotation{}, nil)
	if _, err := uc.GetByID(context.Background(), "q-404"); !errors.Is(err, ErrQuotationNotFound) {
		t.Fatalf("expected ErrQuotationNotFound, got %v", err)
	}
}

func TestQuotationUseCase_ImportProducts(t *testing.T) {
	rows := []entities.RawRow{
		{Name: "Arroz", Quantity: d("5"), Unit: "kg"},
		{Name: "arroz", Quantity: d("5"), Unit: "kg"},
		{Name: "Feijão", Quantity: d("4"), Unit: "kg"},
	}

	t.Run("non owner is forbidden", func(t *testing.T) {
		uc, qr, _ := newQuotationUC(t)
		qr.EXPECT().GetByID(gomock.Any(), "q-1").Return(quotationIn(entities.QuotationStatusPending), nil)

		other := entities.Actor{ID: "buyer-2", Role: entities.RoleBuyer}
		_, err := uc.ImportProducts(context.Background(), other, "q-1", rows)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("locked after submit", func(t *testing.T) {
		uc, qr, _ := newQuotationUC(t)
		qr.EXPECT().GetByID(gomock.Any(), "q-1").Return(quotationIn(entities.QuotationStatusSupervisorReview), nil)

		_, err := uc.ImportProducts(context.Background(), buyer, "q-1", rows)
		if !errors.Is(err, ErrQuotationLocked) || !errors.Is(err, entities.ErrInvalidStateTransition) {
			t.Fatalf("expected ErrQuotationLocked, got %v", err)
		}
	})

	t.Run("re-import keeps supplier prices", func(t *testing.T) {
		uc, qr, _ := newQuotationUC(t)

		res, err := consolidation.Consolidate("q-1", rows)
		if err != nil {
			t.Fatalf("consolidate: %v", err)
		}
		q := quotationIn(entities.QuotationStatusPending)
		q.Products = res.Products
		lines := comparison.NewSupplierLines(res.Products, "s1")
		lines[0].SetUnitPrice(d("10"))
		q.Suppliers = []entities.SupplierOffer{{SupplierID: "s1", SupplierName: "Alpha", Lines: lines}}

		qr.EXPECT().GetByID(gomock.Any(), "q-1").Return(q, nil)
		qr.EXPECT().Replace(gomock.Any(), gomock.Any(), 4).DoAndReturn(echoReplace(t, 4))

		out, err := uc.ImportProducts(context.Background(), buyer, "q-1", rows)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.RowsRead != 3 || out.DuplicatesConsolidated != 1 || len(out.Quotation.Products) != 2 {
			t.Fatalf("unexpected result: %+v", out)
		}
		got := out.Quotation.Suppliers[0].Lines[0]
		if !got.Quantity.Equal(d("10")) || !got.UnitPrice.Equal(d("10")) || !got.Total.Equal(d("100")) {
			t.Fatalf("expected price to survive re-import, got %+v", got)
		}
	})

	t.Run("stale version", func(t *testing.T) {
		uc, qr, _ := newQuotationUC(t)
		qr.EXPECT().GetByID(gomock.Any(), "q-1").Return(quotationIn(entities.QuotationStatusPending), nil)
		qr.EXPECT().Replace(gomock.Any(), gomock.Any(), 4).Return(entities.Quotation{}, entities.ErrConcurrentModification)

		_, err := uc.ImportProducts(context.Background(), buyer, "q-1", rows)
		if !errors.Is(err, entities.ErrConcurrentModification) {
			t.Fatalf("expected ErrConcurrentModification, got %v", err)
		}
	})
}

func TestQuotationUseCase_AddSupplier(t *testing.T) {
	t.Run("duplicate supplier", func(t *testing.T) {
		uc, qr, _ := newQuotationUC(t)
		qr.EXPECT().GetByID(gomock.Any(), "q-1").Return(quotationIn(entities.QuotationStatusPending), nil)

		_, err := uc.AddSupplier(context.Background(), buyer, "q-1", SupplierInput{SupplierID: "s1", SupplierName: "Alpha"})
		if !errors.Is(err, ErrSupplierExists) {
			t.Fatalf("expected ErrSupplierExists, got %v", err)
		}
	})

	t.Run("invalid freight type", func(t *testing.T) {
		uc, _, _ := newQuotationUC(t)
		_, err := uc.AddSupplier(context.Background(), buyer, "q-1", SupplierInput{SupplierID: "s3", SupplierName: "Gama", FreightType: "DAP"})
		if !errors.Is(err, entities.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("adds unpriced lines for every product", func(t *testing.T) {
		uc, qr, _ := newQuotationUC(t)
		qr.EXPECT().GetByID(gomock.Any(), "q-1").Return(quotationIn(entities.QuotationStatusPending), nil)
		qr.EXPECT().Replace(gomock.Any(), gomock.Any(), 4).DoAndReturn(echoReplace(t, 4))

		q, err := uc.AddSupplier(context.Background(), buyer, "q-1", SupplierInput{
			SupplierID: "s3", SupplierName: "Gama", PaymentTermDays: 60, FreightType: entities.FreightTypeCIF,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(q.Suppliers) != 3 {
			t.Fatalf("expected 3 suppliers, got %d", len(q.Suppliers))
		}
		added := q.Suppliers[2]
		if len(added.Lines) != 1 || added.Lines[0].Priced() || added.Lines[0].ID != comparison.LineOfferID("s3", "p1") {
			t.Fatalf("unexpected lines: %+v", added.Lines)
		}
	})
}

func TestQuotationUseCase_UpdateLineOffer(t *testing.T) {
	upd := LineOfferUpdate{UnitPrice: d("7.90"), DeliveryLeadDays: 2, IPI: d("0.5")}

	t.Run("negative price", func(t *testing.T) {
		uc, _, _ := newQuotationUC(t)
		_, err := uc.UpdateLineOffer(context.Background(), buyer, "q-1", "s1", "l1", LineOfferUpdate{UnitPrice: d("-1")})
		if !errors.Is(err, entities.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("unknown line", func(t *testing.T) {
		uc, qr, _ := newQuotationUC(t)
		qr.EXPECT().GetByID(gomock.Any(), "q-1").Return(quotationIn(entities.QuotationStatusPending), nil)

		_, err := uc.UpdateLineOffer(context.Background(), buyer, "q-1", "s1", "l2", upd)
		if !errors.Is(err, ErrLineOfferNotFound) {
			t.Fatalf("expected ErrLineOfferNotFound, got %v", err)
		}
	})

	t.Run("unknown supplier", func(t *testing.T) {
		uc, qr, _ := newQuotationUC(t)
		qr.EXPECT().GetByID(gomock.Any(), "q-1").Return(quotationIn(entities.QuotationStatusPending), nil)

		_, err := uc.UpdateLineOffer(context.Background(), buyer, "q-1", "s9", "l1", upd)
		if !errors.Is(err, ErrSupplierNotFound) {
			t.Fatalf("expected ErrSupplierNotFound, got %v", err)
		}
	})

	t.Run("prices are editable during renegotiation", func(t *testing.T) {
		uc, qr, _ := newQuotationUC(t)
		orig := quotationIn(entities.QuotationStatusRenegotiation)
		qr.EXPECT().GetByID(gomock.Any(), "q-1").Return(orig, nil)
		qr.EXPECT().Replace(gomock.Any(), gomock.Any(), 4).DoAndReturn(echoReplace(t, 4))

		q, err := uc.UpdateLineOffer(context.Background(), buyer, "q-1", "s1", "l1", upd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		l := q.Suppliers[0].Lines[0]
		if !l.UnitPrice.Equal(d("7.90")) || !l.Total.Equal(d("39.5")) || l.DeliveryLeadDays != 2 || !l.Taxes.IPI.Equal(d("0.5")) {
			t.Fatalf("unexpected line: %+v", l)
		}
		if !orig.Suppliers[0].Lines[0].UnitPrice.Equal(d("10")) {
			t.Fatalf("loaded quotation was mutated")
		}
	})

	t.Run("approved quotation is locked", func(t *testing.T) {
		uc, qr, _ := newQuotationUC(t)
		qr.EXPECT().GetByID(gomock.Any(), "q-1").Return(quotationIn(entities.QuotationStatusApproved), nil)

		_, err := uc.UpdateLineOffer(context.Background(), buyer, "q-1", "s1", "l1", upd)
		if !errors.Is(err, ErrQuotationLocked) {
			t.Fatalf("expected ErrQuotationLocked, got %v", err)
		}
	})
}

func TestQuotationUseCase_Compare(t *testing.T) {
	t.Run("uses historical price", func(t *testing.T) {
		uc, qr, sr := newQuotationUC(t)
		qr.EXPECT().GetByID(gomock.Any(), "q-1").Return(quotationIn(entities.QuotationStatusSupervisorReview), nil)
		sr.EXPECT().FindLatestApproved(gomock.Any(), "arroz").Return(entities.HistoricalPrice{UnitPrice: d("9.20"), SupplierName: "Alpha"}, true, nil)

		report, err := uc.Compare(context.Background(), "q-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(report.Items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(report.Items))
		}
		item := report.Items[0]
		if item.BestPrice == nil || item.BestPrice.SupplierID != "s2" {
			t.Fatalf("expected s2 best price, got %+v", item.BestPrice)
		}
		if item.Historical == nil || !item.Historical.UnitPrice.Equal(d("9.20")) {
			t.Fatalf("expected historical price, got %+v", item.Historical)
		}
	})

	t.Run("history failure propagates", func(t *testing.T) {
		uc, qr, sr := newQuotationUC(t)
		qr.EXPECT().GetByID(gomock.Any(), "q-1").Return(quotationIn(entities.QuotationStatusSupervisorReview), nil)
		sr.EXPECT().FindLatestApproved(gomock.Any(), "arroz").Return(entities.HistoricalPrice{}, false, errors.New("throttled"))

		if _, err := uc.Compare(context.Background(), "q-1"); err == nil || err.Error() != "throttled" {
			t.Fatalf("expected throttled error, got %v", err)
		}
	})
}
