package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := Wrap(CodeUnavailable, cause, "list items")

	if err.Code() != CodeUnavailable {
		t.Fatalf("expected %s got %s", CodeUnavailable, err.Code())
	}
	if !stdErrors.Is(err, cause) {
		t.Fatal("expected cause to be reachable via errors.Is")
	}
}

func TestAsReturnsNilForForeignError(t *testing.T) {
	if typed := As(stdErrors.New("plain")); typed != nil {
		t.Fatalf("expected nil, got %v", typed)
	}
	if As(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	meta := MetadataFor(Code("BOGUS"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", meta.HTTPStatus)
	}
}

func TestIsCode(t *testing.T) {
	err := New(CodeBusy, "inventory mutation in flight")
	if !IsCode(err, CodeBusy) {
		t.Fatal("expected busy code")
	}
	if IsCode(err, CodeValidation) {
		t.Fatal("did not expect validation code")
	}
	if IsCode(stdErrors.New("plain"), CodeBusy) {
		t.Fatal("plain error should not match")
	}
}
