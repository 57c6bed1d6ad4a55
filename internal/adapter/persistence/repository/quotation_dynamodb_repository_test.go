package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"cotacao_service/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleQuotation() entities.Quotation {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return entities.Quotation{
		ID:               "q-1",
		BuyerID:          "buyer-1",
		BuyerName:        "Ana",
		DeliveryLocation: "CD Norte",
		PurchaseType:     entities.PurchaseTypeScheduled,
		Status:           entities.QuotationStatusPending,
		Rounds:           1,
		Version:          1,
		CreatedAt:        created,
		UpdatedAt:        created,
		Products: []entities.Product{
			{ID: "p1", Name: "Arroz", Unit: "kg", Quantity: d("5")},
		},
		Suppliers: []entities.SupplierOffer{
			{SupplierID: "s1", SupplierName: "Alpha", PaymentTermDays: 30, FreightType: entities.FreightTypeFOB, FreightValue: d("12.5"), Lines: []entities.LineOffer{
				{ID: "l1", ProductID: "p1", ProductName: "Arroz", SupplierID: "s1", Quantity: d("5"), UnitPrice: d("8.45"), Total: d("42.25"), DeliveryLeadDays: 3,
					Taxes: entities.TaxAddOns{Difal: d("0.3"), IPI: d("0")}, PreviousUnitPrice: d("9")},
			}},
		},
	}
}

func TestQuotationDynamoRepository_CreateAndGet(t *testing.T) {
	ddb := newFakeDynamo()
	repo := NewQuotationDynamoRepository(ddb, "")

	q := sampleQuotation()
	if _, err := repo.Create(context.Background(), q); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(context.Background(), "q-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != q.ID || got.Status != q.Status || !got.CreatedAt.Equal(q.CreatedAt) || got.Version != 1 {
		t.Fatalf("unexpected quotation: %+v", got)
	}
	l := got.Suppliers[0].Lines[0]
	if !l.UnitPrice.Equal(d("8.45")) || !l.Total.Equal(d("42.25")) || !l.Taxes.Difal.Equal(d("0.3")) || l.SupplierID != "s1" {
		t.Fatalf("unexpected line: %+v", l)
	}
	if !got.Suppliers[0].FreightValue.Equal(d("12.5")) || got.Suppliers[0].FreightType != entities.FreightTypeFOB {
		t.Fatalf("unexpected supplier: %+v", got.Suppliers[0])
	}

	t.Run("duplicate id", func(t *testing.T) {
		if _, err := repo.Create(context.Background(), q); !errors.Is(err, entities.ErrConcurrentModification) {
			t.Fatalf("expected ErrConcurrentModification, got %v", err)
		}
	})

	t.Run("missing is zero value", func(t *testing.T) {
		got, err := repo.GetByID(context.Background(), "nope")
		if err != nil || got.ID != "" {
			t.Fatalf("expected zero value, got %+v, %v", got, err)
		}
	})
}

func TestQuotationDynamoRepository_Replace(t *testing.T) {
	ddb := newFakeDynamo()
	repo := NewQuotationDynamoRepository(ddb, "quotations")
	q := sampleQuotation()
	if _, err := repo.Create(context.Background(), q); err != nil {
		t.Fatalf("create: %v", err)
	}

	q.Version = 2
	q.Suppliers[0].Lines[0].SetUnitPrice(d("8"))
	if _, err := repo.Replace(context.Background(), q, 1); err != nil {
		t.Fatalf("replace: %v", err)
	}

	// A writer still holding version 1 must lose.
	if _, err := repo.Replace(context.Background(), q, 1); !errors.Is(err, entities.ErrConcurrentModification) {
		t.Fatalf("expected ErrConcurrentModification, got %v", err)
	}

	got, _ := repo.GetByID(context.Background(), "q-1")
	if got.Version != 2 || !got.Suppliers[0].Lines[0].Total.Equal(d("40")) {
		t.Fatalf("unexpected stored quotation: %+v", got)
	}
}

func TestQuotationDynamoRepository_UpdateStatus(t *testing.T) {
	ddb := newFakeDynamo()
	repo := NewQuotationDynamoRepository(ddb, "quotations")
	q := sampleQuotation()
	q.Status = entities.QuotationStatusSupervisorReview
	if _, err := repo.Create(context.Background(), q); err != nil {
		t.Fatalf("create: %v", err)
	}

	at := time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)
	change := entities.StatusChange{
		QuotationID: "q-1",
		From:        entities.QuotationStatusSupervisorReview,
		To:          entities.QuotationStatusRenegotiation,
		Reason:      "price too high",
		NewRound:    true,
		At:          at,
	}

	got, err := repo.UpdateStatus(context.Background(), change)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if got.Status != entities.QuotationStatusRenegotiation || got.Rounds != 2 || got.Version != 2 || got.StatusReason != "price too high" || !got.UpdatedAt.Equal(at) {
		t.Fatalf("unexpected quotation: %+v", got)
	}
	if len(got.Products) != 1 {
		t.Fatalf("expected nested data to survive the update")
	}

	_, err = repo.UpdateStatus(context.Background(), change)
	if !errors.Is(err, entities.ErrConcurrentModification) || !errors.Is(err, entities.ErrInvalidStateTransition) {
		t.Fatalf("expected ErrConcurrentModification, got %v", err)
	}
}

func TestQuotationDynamoRepository_StorageError(t *testing.T) {
	ddb := newFakeDynamo()
	ddb.err = errors.New("throttled")
	repo := NewQuotationDynamoRepository(ddb, "quotations")

	if _, err := repo.GetByID(context.Background(), "q-1"); err == nil || err.Error() != "throttled" {
		t.Fatalf("expected throttled, got %v", err)
	}
	if _, err := repo.UpdateStatus(context.Background(), entities.StatusChange{QuotationID: "q-1"}); errors.Is(err, entities.ErrConcurrentModification) {
		t.Fatalf("storage errors must not look like lost races")
	}
}
