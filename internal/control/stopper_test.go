package control

import (
	"sync"
	"testing"
)

func TestStopperInitial(t *testing.T) {
	var s Stopper
	if s.Requested() {
		t.Error("new stopper should not be requested")
	}
	if s.Reason() != "" {
		t.Errorf("reason: got %q, want empty", s.Reason())
	}
}

func TestStopperKeepsFirstReason(t *testing.T) {
	var s Stopper
	s.Request("SIGINT")
	s.Request("SIGTERM")

	if !s.Requested() {
		t.Fatal("expected requested")
	}
	if s.Reason() != "SIGINT" {
		t.Errorf("reason: got %q, want SIGINT", s.Reason())
	}
}

func TestStopperConcurrentRequests(t *testing.T) {
	var s Stopper
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Request("concurrent")
			_ = s.Requested()
		}()
	}
	wg.Wait()

	if !s.Requested() || s.Reason() != "concurrent" {
		t.Errorf("unexpected state: requested=%v reason=%q", s.Requested(), s.Reason())
	}
}
