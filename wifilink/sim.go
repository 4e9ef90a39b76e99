package wifilink

import (
	"sync"

	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/errcode"
)

// Sim is a scripted in-memory Radio for host builds and tests. Association
// progress is expressed in Status polls: a path comes up once it has been
// polled its configured number of times, or never when the count is negative.
type Sim struct {
	// FastUpAfter and SlowUpAfter are polls-until-associated per path.
	// Negative means that path never associates.
	FastUpAfter int
	SlowUpAfter int

	// Channel and BSSID reported by AP once associated.
	Channel uint8
	BSSID   [6]byte

	// EnableErr, when set, is returned by every Enable call.
	EnableErr error

	mu        sync.Mutex
	enabled   bool
	path      Path
	pathPolls int
	total     int

	// Counters and probes for assertions.
	FastJoins      int
	SlowJoins      int
	Disables       int
	SlowJoinAtPoll int // total poll count when the slow join was issued
	AddrApplied    StaticAddr
	AddrApplyCount int
}

func (s *Sim) Enable() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.EnableErr != nil {
		return s.EnableErr
	}
	s.enabled = true
	return nil
}

func (s *Sim) Disable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = false
	s.path = PathNone
	s.pathPolls = 0
	s.Disables++
}

func (s *Sim) SetStationAddr(addr StaticAddr) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return errcode.RadioOff
	}
	s.AddrApplied = addr
	s.AddrApplyCount++
	return nil
}

func (s *Sim) Join(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return errcode.RadioOff
	}
	s.path = PathSlow
	s.pathPolls = 0
	s.SlowJoins++
	s.SlowJoinAtPoll = s.total
	return nil
}

func (s *Sim) JoinFast(creds Credentials, channel uint8, bssid [6]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return errcode.RadioOff
	}
	s.path = PathFast
	s.pathPolls = 0
	s.FastJoins++
	return nil
}

func (s *Sim) Status() LinkStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled || s.path == PathNone {
		return LinkDown
	}
	s.total++
	s.pathPolls++
	limit := s.SlowUpAfter
	if s.path == PathFast {
		limit = s.FastUpAfter
	}
	if limit >= 0 && s.pathPolls >= limit {
		return LinkUp
	}
	return LinkJoining
}

func (s *Sim) AP() (uint8, [6]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled || s.path == PathNone {
		return 0, [6]byte{}, errcode.LinkDown
	}
	return s.Channel, s.BSSID, nil
}

// TotalPolls reports how many Status polls the machine issued.
func (s *Sim) TotalPolls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Enabled reports whether the radio is currently powered.
func (s *Sim) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}
