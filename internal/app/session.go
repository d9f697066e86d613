package app

import (
	"sync"

	"github.com/metinatakli/cinex-booking/internal/booking"
)

type sessionKey string

const (
	SessionKeyGuest = sessionKey("guest")
)

func (s sessionKey) String() string {
	return string(s)
}

// bookingRegistry maps browser session tokens to their single in-memory
// booking session. Nothing here survives a process restart; a booking is
// in-memory state by design.
type bookingRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*booking.Session
}

func newBookingRegistry() *bookingRegistry {
	return &bookingRegistry{
		sessions: make(map[string]*booking.Session),
	}
}

func (reg *bookingRegistry) Get(token string) *booking.Session {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	return reg.sessions[token]
}

func (reg *bookingRegistry) Put(token string, session *booking.Session) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	reg.sessions[token] = session
}

func (reg *bookingRegistry) Delete(token string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	delete(reg.sessions, token)
}
