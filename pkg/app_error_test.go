package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		e := NewDomainErrorSimple("QUOTATION_NOT_FOUND", "Quotation not found", http.StatusNotFound)
		if e.Error() != "QUOTATION_NOT_FOUND: Quotation not found" {
			t.Fatalf("unexpected error string: %q", e.Error())
		}
		if e.Unwrap() != nil {
			t.Fatalf("expected nil cause")
		}
		body := e.ToHTTPError()
		if body.Code != "QUOTATION_NOT_FOUND" || body.Message != "Quotation not found" {
			t.Fatalf("unexpected body: %+v", body)
		}
	})

	t.Run("wrapped cause", func(t *testing.T) {
		cause := errors.New("db")
		e := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)
		if !errors.Is(e, cause) {
			t.Fatalf("expected cause to be unwrapped")
		}
		if e.HTTPStatus != http.StatusInternalServerError {
			t.Fatalf("unexpected status %d", e.HTTPStatus)
		}
		if e.ToHTTPError().Message != "An internal error occurred" {
			t.Fatalf("cause must not leak to the client body")
		}
	})
}
