package request

import (
	"encoding/json"
	"errors"
	"testing"

	"cotacao_service/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestCreateQuotationRequest_ToInput(t *testing.T) {
	var r CreateQuotationRequest
	body := `{"delivery_location":"CD","purchase_type":" Emergency ","emergency_reason":"broken pump","rows":[{"name":"Arroz","quantity":"2.5","unit":"kg"},{"name":"Sal","quantity":3}]}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	in := r.ToInput()
	if in.PurchaseType != entities.PurchaseTypeEmergency || in.EmergencyReason != "broken pump" {
		t.Fatalf("unexpected input: %+v", in)
	}
	if len(in.Rows) != 2 || !in.Rows[0].Quantity.Equal(decimal.RequireFromString("2.5")) || !in.Rows[1].Quantity.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("unexpected rows: %+v", in.Rows)
	}
}

func TestSupplierRequest_ToInput(t *testing.T) {
	in := SupplierRequest{SupplierID: "s1", SupplierName: "Alpha", FreightType: " cif "}.ToInput()
	if in.FreightType != entities.FreightTypeCIF {
		t.Fatalf("expected CIF, got %q", in.FreightType)
	}
}

func TestTransitionRequest_ToDecision(t *testing.T) {
	t.Run("renegotiate alias", func(t *testing.T) {
		dec, err := TransitionRequest{Action: "Renegotiate", Reason: "too high"}.ToDecision()
		if err != nil || dec.Action != entities.ActionRequestRenegotiation {
			t.Fatalf("unexpected decision: %+v, %v", dec, err)
		}
	})

	t.Run("selection", func(t *testing.T) {
		dec, err := TransitionRequest{Action: "approve", Selection: []SelectedLineRequest{{LineOfferID: " l1 ", Quantity: decimal.NewFromInt(2)}}}.ToDecision()
		if err != nil || len(dec.Selection) != 1 || dec.Selection[0].LineOfferID != "l1" {
			t.Fatalf("unexpected decision: %+v, %v", dec, err)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := (TransitionRequest{Action: "cancel"}).ToDecision(); !errors.Is(err, ErrUnknownAction) {
			t.Fatalf("expected ErrUnknownAction, got %v", err)
		}
	})
}
