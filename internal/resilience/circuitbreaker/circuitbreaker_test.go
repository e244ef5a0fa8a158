package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func TestCircuitBreaker_PassesThroughSuccess(t *testing.T) {
	cb := New(DefaultConfig("test"))

	result, err := cb.Execute(func() (interface{}, error) {
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result != "ok" {
		t.Errorf("Execute() = %v, want %q", result, "ok")
	}
}

func TestCircuitBreaker_TripsAfterFailures(t *testing.T) {
	cfg := Config{
		Name:             "trip-test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      3,
	}
	cb := New(cfg)

	boom := errors.New("source down")
	for i := 0; i < 5; i++ {
		_, _ = cb.Execute(func() (interface{}, error) {
			return nil, boom
		})
	}

	if !cb.IsOpen() {
		t.Fatalf("breaker state = %v, want open after repeated failures", cb.State())
	}

	_, err := cb.Execute(func() (interface{}, error) {
		t.Error("fn must not be called while the circuit is open")
		return nil, nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Execute() error = %v, want ErrOpenState", err)
	}
}

func TestCircuitBreaker_Name(t *testing.T) {
	cb := New(SourceFetchConfig())
	if cb.Name() != "source-fetch" {
		t.Errorf("Name() = %q, want %q", cb.Name(), "source-fetch")
	}
}
