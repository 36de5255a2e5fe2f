// ABOUTME: Tests for retry utilities including exponential backoff
// ABOUTME: Validates backoff bounds, jitter, and retry-until-success behavior
package util

import (
	"errors"
	"testing"
	"time"
)

func TestCalculateBackoff_ZeroAttempt(t *testing.T) {
	result := CalculateBackoff(time.Second, 0)
	if result != 0 {
		t.Errorf("expected 0 for attempt 0, got %v", result)
	}
}

func TestCalculateBackoff_ExponentialGrowth(t *testing.T) {
	baseDelay := 10 * time.Millisecond

	for attempt := 1; attempt <= 5; attempt++ {
		expectedBase := baseDelay * time.Duration(1<<uint(attempt))
		minExpected := expectedBase * 3 / 4
		maxExpected := expectedBase * 5 / 4

		result := CalculateBackoff(baseDelay, attempt)

		if result < minExpected || result > maxExpected {
			t.Errorf("attempt %d: expected backoff between %v and %v, got %v",
				attempt, minExpected, maxExpected, result)
		}
	}
}

func TestCalculateBackoff_CapsAtMax(t *testing.T) {
	result := CalculateBackoff(time.Second, 40)

	maxAllowed := MaxBackoff * 5 / 4
	if result > maxAllowed {
		t.Errorf("expected backoff <= %v, got %v", maxAllowed, result)
	}
	if result <= 0 {
		t.Errorf("expected positive backoff, got %v", result)
	}
}

var errBusy = errors.New("database is locked")

func TestRetry_SucceedsAfterTransientErrors(t *testing.T) {
	calls := 0
	err := Retry(3, time.Millisecond, func(err error) bool { return errors.Is(err, errBusy) }, func() error {
		calls++
		if calls < 3 {
			return errBusy
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Retry() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	permanent := errors.New("UNIQUE constraint failed")
	calls := 0
	err := Retry(5, time.Millisecond, func(err error) bool { return errors.Is(err, errBusy) }, func() error {
		calls++
		return permanent
	})

	if !errors.Is(err, permanent) {
		t.Errorf("Retry() error = %v, want %v", err, permanent)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetry_ReturnsLastErrorWhenExhausted(t *testing.T) {
	calls := 0
	err := Retry(2, time.Millisecond, func(error) bool { return true }, func() error {
		calls++
		return errBusy
	})

	if !errors.Is(err, errBusy) {
		t.Errorf("Retry() error = %v, want %v", err, errBusy)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}
