package log

import (
	"testing"
)

func TestErrorWithTraceID_ReusesRequestID(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	if got := ErrorWithTraceID(Fields{RequestIDKey: "01HZX"}, "boom"); got != "01HZX" {
		t.Errorf("expected request id as trace id, got %q", got)
	}
}

func TestErrorWithTraceID_GeneratesID(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	first := ErrorWithTraceID(nil, "boom")
	second := ErrorWithTraceID(Fields{RequestIDKey: "unknown"}, "boom")

	if first == "" || first == "unknown" {
		t.Errorf("expected generated trace id, got %q", first)
	}
	if first == second {
		t.Error("expected distinct trace ids")
	}
}
