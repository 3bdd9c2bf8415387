package engine

import (
	"errors"
	"testing"
	"time"
)

var (
	testNow    = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	notYetDue  = testNow.Add(30 * time.Minute)
	alreadyDue = testNow.Add(-time.Minute)
)

func TestTransition_PendingPaths(t *testing.T) {
	for _, target := range []BookingStatus{StatusConfirmed, StatusRejected, StatusCancelled, StatusLocked, StatusOutOfSystem} {
		got, err := Transition(StatusPending, notYetDue, target, testNow)
		if err != nil {
			t.Fatalf("pending -> %s: unexpected error %v", target, err)
		}
		if got != target {
			t.Fatalf("pending -> %s: got %s", target, got)
		}
	}
}

func TestTransition_ExpiredPendingCannotConfirm(t *testing.T) {
	_, err := Transition(StatusPending, alreadyDue, StatusConfirmed, testNow)
	var invalid *InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if invalid.Current != StatusExpired || invalid.Target != StatusConfirmed {
		t.Fatalf("error names %s -> %s, want expired -> confirmed", invalid.Current, invalid.Target)
	}
}

func TestTransition_ConfirmAtExactDeadlineFails(t *testing.T) {
	// Confirmation is only allowed strictly before expiredAt.
	if _, err := Transition(StatusPending, testNow, StatusConfirmed, testNow); err == nil {
		t.Fatal("confirming at the exact deadline should fail")
	}
}

func TestTransition_ConfirmedPaths(t *testing.T) {
	for _, target := range []BookingStatus{StatusCancelled, StatusRejected, StatusLocked, StatusOutOfSystem} {
		got, err := Transition(StatusConfirmed, alreadyDue, target, testNow)
		if err != nil {
			t.Fatalf("confirmed -> %s: unexpected error %v", target, err)
		}
		if got != target {
			t.Fatalf("confirmed -> %s: got %s", target, got)
		}
	}

	// Confirmed never expires: the deadline only guards pending bookings.
	if _, err := Transition(StatusConfirmed, alreadyDue, StatusExpired, testNow); err == nil {
		t.Fatal("confirmed -> expired should fail")
	}
}

func TestTransition_TerminalStatesReject(t *testing.T) {
	for _, current := range []BookingStatus{StatusRejected, StatusCancelled, StatusExpired} {
		for _, target := range []BookingStatus{StatusConfirmed, StatusRejected, StatusCancelled, StatusPending} {
			if current == target && current != StatusExpired {
				continue
			}
			_, err := Transition(current, alreadyDue, target, testNow)
			var invalid *InvalidTransitionError
			if !errors.As(err, &invalid) {
				t.Fatalf("%s -> %s: expected InvalidTransitionError, got %v", current, target, err)
			}
		}
	}
}

func TestTransition_AdministrativeOverridesFromAnywhere(t *testing.T) {
	for _, current := range []BookingStatus{StatusPending, StatusConfirmed, StatusRejected, StatusCancelled, StatusExpired, StatusLocked, StatusOutOfSystem} {
		for _, target := range []BookingStatus{StatusLocked, StatusOutOfSystem} {
			got, err := Transition(current, alreadyDue, target, testNow)
			if err != nil {
				t.Fatalf("%s -> %s: unexpected error %v", current, target, err)
			}
			if got != target {
				t.Fatalf("%s -> %s: got %s", current, target, got)
			}
		}
	}
}

func TestTransition_ExpiryIsIdempotent(t *testing.T) {
	// Lazily expiring an overdue pending booking succeeds.
	got, err := Transition(StatusPending, alreadyDue, StatusExpired, testNow)
	if err != nil || got != StatusExpired {
		t.Fatalf("overdue pending -> expired: got %s, %v", got, err)
	}

	// Expiring again is a no-op, not an error.
	got, err = Transition(StatusExpired, alreadyDue, StatusExpired, testNow)
	if err != nil || got != StatusExpired {
		t.Fatalf("expired -> expired must be a no-op: got %s, %v", got, err)
	}

	// A pending booking still inside its window must not be expirable.
	if _, err := Transition(StatusPending, notYetDue, StatusExpired, testNow); err == nil {
		t.Fatal("expiring a live pending booking should fail")
	}
}

func TestTransition_UnknownTarget(t *testing.T) {
	if _, err := Transition(StatusPending, notYetDue, BookingStatus("paused"), testNow); err == nil {
		t.Fatal("unknown target status should fail")
	}
}

func TestIsExpired(t *testing.T) {
	if IsExpired(StatusPending, notYetDue, testNow) {
		t.Fatal("pending before deadline is not expired")
	}
	if !IsExpired(StatusPending, alreadyDue, testNow) {
		t.Fatal("pending past deadline is expired")
	}
	if !IsExpired(StatusPending, testNow, testNow) {
		t.Fatal("deadline itself counts as expired")
	}
	if IsExpired(StatusConfirmed, alreadyDue, testNow) {
		t.Fatal("only pending bookings expire")
	}
}

func TestOccupies(t *testing.T) {
	cases := []struct {
		status    BookingStatus
		expiredAt time.Time
		want      bool
	}{
		{StatusPending, notYetDue, true},
		{StatusPending, alreadyDue, false},
		{StatusConfirmed, alreadyDue, true},
		{StatusLocked, alreadyDue, true},
		{StatusOutOfSystem, alreadyDue, true},
		{StatusRejected, notYetDue, false},
		{StatusCancelled, notYetDue, false},
		{StatusExpired, notYetDue, false},
	}
	for _, c := range cases {
		if got := Occupies(c.status, c.expiredAt, testNow); got != c.want {
			t.Fatalf("Occupies(%s) = %v, want %v", c.status, got, c.want)
		}
	}
}
