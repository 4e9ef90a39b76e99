// Package rtcmem persists the link record across deep sleep.
//
// The record lives in a small memory region that survives a sleep cycle but
// not a full power loss. Contents are never trusted as-is: every read is
// validated against an embedded checksum, and anything that fails validation
// is reported as absent. There is exactly one reader and one writer per wake
// cycle, so the checksum is the only staleness defence needed.
package rtcmem

import (
	"sync"

	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/errcode"
)

// RecordSize is the fixed size of the persisted record in bytes:
// 4 (checksum) + 1 (channel) + 6 (address) + 1 (padding).
// The layout must be preserved exactly; on a device whose region holds an
// older layout the checksum fails and the record reads as absent.
const RecordSize = 12

// Region is a fixed RecordSize window of sleep-surviving memory.
// Read and Write transfer the whole window in one call.
type Region interface {
	Read(buf []byte) error
	Write(buf []byte) error
}

// -----------------------------------------------------------------------------
// In-memory region
// -----------------------------------------------------------------------------

// MemRegion is an in-memory Region. The zero value is an empty (never written)
// region. Fault flags let tests exercise the underlying-failure paths.
type MemRegion struct {
	mu   sync.Mutex
	data [RecordSize]byte

	FailReads  bool
	FailWrites bool
}

func (m *MemRegion) Read(buf []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads || len(buf) != RecordSize {
		return errcode.RegionFault
	}
	copy(buf, m.data[:])
	return nil
}

func (m *MemRegion) Write(buf []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites || len(buf) != RecordSize {
		return errcode.RegionFault
	}
	copy(m.data[:], buf)
	return nil
}

// Corrupt flips one bit of the stored record, byte index i, bit index b.
func (m *MemRegion) Corrupt(i int, b uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[i] ^= 1 << b
}
