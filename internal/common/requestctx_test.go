package common

import (
	"context"
	"testing"
)

func TestRequestContext_RoundTrip(t *testing.T) {
	ctx := context.Background()

	if rc := RequestContextFromContext(ctx); rc != nil {
		t.Error("Expected nil RequestContext from empty context")
	}
	if id := ResolveCorrelationID(ctx); id != "" {
		t.Errorf("Expected empty correlation ID, got %q", id)
	}

	ctx = WithRequestContext(ctx, &RequestContext{CorrelationID: "abc12345", RemoteAddr: "127.0.0.1:5000"})

	got := RequestContextFromContext(ctx)
	if got == nil {
		t.Fatal("Expected non-nil RequestContext")
	}
	if got.RemoteAddr != "127.0.0.1:5000" {
		t.Errorf("Expected remote addr 127.0.0.1:5000, got %s", got.RemoteAddr)
	}
	if id := ResolveCorrelationID(ctx); id != "abc12345" {
		t.Errorf("Expected abc12345, got %s", id)
	}
}
