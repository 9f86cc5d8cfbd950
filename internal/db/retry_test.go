package db

import (
	"database/sql/driver"
	"errors"
	"testing"
	"time"
)

func TestWithRetryStopsOnNonTransientError(t *testing.T) {
	retrySleep = func(time.Duration) {}
	defer func() { retrySleep = time.Sleep }()

	calls := 0
	err := WithRetry("", "test", func() error {
		calls++
		return errors.New("syntax error")
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if calls != 1 {
		t.Fatalf("non-transient error must not be retried, got %d calls", calls)
	}
}

func TestWithRetryRetriesTransientError(t *testing.T) {
	retrySleep = func(time.Duration) {}
	defer func() { retrySleep = time.Sleep }()

	calls := 0
	err := WithRetry("", "test", func() error {
		calls++
		if calls < 3 {
			return driver.ErrBadConn
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestWithRetryGivesUpAfterMaxAttempts(t *testing.T) {
	retrySleep = func(time.Duration) {}
	defer func() { retrySleep = time.Sleep }()

	calls := 0
	err := WithRetry("", "test", func() error {
		calls++
		return errors.New("connection refused")
	})
	if err == nil {
		t.Fatalf("expected error after exhausting retries")
	}
	if calls != maxAttempts {
		t.Fatalf("expected %d attempts, got %d", maxAttempts, calls)
	}
}

func TestIsTransient(t *testing.T) {
	if !IsTransient(driver.ErrBadConn) {
		t.Fatalf("driver.ErrBadConn should be transient")
	}
	if !IsTransient(errors.New("dial tcp: connection refused")) {
		t.Fatalf("connection refused should be transient")
	}
	if IsTransient(errors.New("Duplicate entry 'RT-0001' for key 'booking_reference'")) {
		t.Fatalf("constraint violation must not be transient")
	}
	if IsTransient(nil) {
		t.Fatalf("nil is not transient")
	}
}
