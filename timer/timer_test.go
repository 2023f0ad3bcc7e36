package timer

import (
	"testing"
	"time"
)

func TestSingleShotElapsesAfterDuration(t *testing.T) {
	s := New()
	s.Arm(10 * time.Millisecond)
	if s.State() != Armed {
		t.Fatalf("expected Armed immediately after Arm, got %v", s.State())
	}
	time.Sleep(40 * time.Millisecond)
	if !s.PollElapsed() {
		t.Fatal("expected PollElapsed to report true after duration")
	}
	if s.PollElapsed() {
		t.Fatal("expected PollElapsed to be consumed, returning false on second call")
	}
}

func TestSingleShotDisarmPreventsElapse(t *testing.T) {
	s := New()
	s.Arm(10 * time.Millisecond)
	s.Disarm()
	time.Sleep(40 * time.Millisecond)
	if s.PollElapsed() {
		t.Fatal("expected disarmed timer to never report elapsed")
	}
	if s.State() != Idle {
		t.Fatalf("expected Idle after disarm, got %v", s.State())
	}
}

func TestSingleShotRearmRestartsCountdown(t *testing.T) {
	s := New()
	s.Arm(20 * time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	s.Arm(20 * time.Millisecond)
	time.Sleep(15 * time.Millisecond)
	if s.PollElapsed() {
		t.Fatal("expected rearm to restart countdown, not elapsed yet")
	}
}
