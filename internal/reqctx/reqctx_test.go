package reqctx

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestWithRequestContext(t *testing.T) {
	ctx := WithRequestContext(context.Background())
	rc := GetRequestContext(ctx)

	if len(rc.RequestID) != 16 {
		t.Errorf("Expected 16 hex character id, got %q", rc.RequestID)
	}
	if rc.StartTime.IsZero() {
		t.Error("Expected start time to be set")
	}

	if again := GetRequestContext(WithRequestContext(ctx)); again.RequestID != rc.RequestID {
		t.Errorf("Expected existing id %q to be kept, got %q", rc.RequestID, again.RequestID)
	}

	other := GetRequestContext(WithRequestContext(context.Background()))
	if other.RequestID == rc.RequestID {
		t.Error("Expected distinct ids for separate lookups")
	}
}

func TestGetRequestContext_Missing(t *testing.T) {
	if rc := GetRequestContext(context.Background()); rc.RequestID != "unknown" {
		t.Errorf("Expected placeholder id, got %q", rc.RequestID)
	}
}

func TestRequestError(t *testing.T) {
	ctx := WithRequestContext(context.Background())
	id := GetRequestContext(ctx).RequestID

	err := NewRequestError(ctx, context.Canceled)
	if !errors.Is(err, context.Canceled) {
		t.Error("Expected request error to unwrap to its cause")
	}
	if !strings.HasPrefix(err.Error(), "["+id+"] ") {
		t.Errorf("Expected message to carry the request id, got %q", err.Error())
	}
}
