package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestDomainErrorFormatting(t *testing.T) {
	inner := errors.New("connection refused")
	err := APIError("failed to send request", inner)

	if !strings.Contains(err.Error(), "[api]") {
		t.Errorf("expected error type in message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected wrapped detail, got %q", err.Error())
	}

	bare := ParseError("reply has no opening fence", nil)
	if strings.Contains(bare.Error(), "<nil>") {
		t.Errorf("nil cause must not leak into the message, got %q", bare.Error())
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	inner := errors.New("no such file")
	err := fmt.Errorf("extracting page: %w", IOError("failed to read image", inner))

	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		t.Fatal("expected DomainError in chain")
	}
	if domainErr.Type != ErrorTypeIO {
		t.Errorf("expected io type, got %s", domainErr.Type)
	}
	if !errors.Is(err, inner) {
		t.Error("expected inner error to be reachable")
	}
}

func TestConstructorsSetTypes(t *testing.T) {
	tests := []struct {
		err  *DomainError
		want ErrorType
	}{
		{ValidationError("m", nil), ErrorTypeValidation},
		{RasterizeError("m", nil), ErrorTypeRasterize},
		{APIError("m", nil), ErrorTypeAPI},
		{ParseError("m", nil), ErrorTypeParse},
		{ConfigError("m", nil), ErrorTypeConfig},
		{IOError("m", nil), ErrorTypeIO},
	}
	for _, tt := range tests {
		if tt.err.Type != tt.want {
			t.Errorf("expected type %s, got %s", tt.want, tt.err.Type)
		}
	}
}
