package session

import (
	"sync"
	"time"
)

// timer is a cancellable countdown handle. Cancellation is re-checked under
// the session mutex when a tick fires, so a tick that was already queued
// when cancel ran never mutates the session.
type timer struct {
	done chan struct{}
	once sync.Once
}

func newTimer() *timer {
	return &timer{done: make(chan struct{})}
}

func (t *timer) cancel() {
	t.once.Do(func() { close(t.done) })
}

func (t *timer) cancelled() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// startTimerLocked arms the countdown. Caller holds s.mu.
func (s *Session) startTimerLocked(durationSec int) {
	s.remaining = durationSec
	t := newTimer()
	s.timer = t
	go s.runTimer(t)
}

func (s *Session) runTimer(t *timer) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			if s.onTick(t) {
				return
			}
		}
	}
}

// onTick decrements the countdown and forces submission at zero. Returns
// true when the timer should stop rescheduling.
func (s *Session) onTick(t *timer) bool {
	s.mu.Lock()
	if t.cancelled() || s.timer != t || s.status != StatusActive {
		s.mu.Unlock()
		return true
	}
	s.remaining--
	if s.remaining > 0 {
		s.mu.Unlock()
		return false
	}
	job := s.finishLocked()
	s.mu.Unlock()
	if job != nil {
		s.persist(job)
	}
	return true
}
