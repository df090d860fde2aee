package control

import "sync/atomic"

// Stopper is a cooperative shutdown flag. Request may be called from any
// goroutine, including a signal handler; it never touches the output line.
// The loop polls the flag at the top of each tick.
type Stopper struct {
	reason atomic.Pointer[string]
}

// Request records a shutdown request. Only the first reason is kept.
func (s *Stopper) Request(reason string) {
	s.reason.CompareAndSwap(nil, &reason)
}

// Requested reports whether shutdown has been requested.
func (s *Stopper) Requested() bool {
	return s.reason.Load() != nil
}

// Reason returns the first recorded reason, or "" if none.
func (s *Stopper) Reason() string {
	if r := s.reason.Load(); r != nil {
		return *r
	}
	return ""
}
