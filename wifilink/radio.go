// Package wifilink acquires the network link for one wake cycle.
//
// The reconnect machine first probes a fast path using the channel and access
// point address remembered from the previous cycle, falls back to a full
// discovery join when the probe stalls, and bounds total radio-on time with a
// hard tick ceiling so the node can never sit awake draining its battery.
package wifilink

import "time"

// LinkStatus is the association state reported by a Radio poll.
type LinkStatus uint8

const (
	LinkDown LinkStatus = iota
	LinkJoining
	LinkUp
)

// Credentials for the target network. Opaque to the machine.
type Credentials struct {
	SSID       string
	Passphrase string
}

// StaticAddr is the fixed station addressing applied before a join. Assigning
// the address statically skips address-negotiation latency on every wake.
type StaticAddr struct {
	IP      [4]byte
	Gateway [4]byte
	Mask    [4]byte
}

// Radio is the hardware the machine drives. Join and JoinFast start an
// association attempt and return; progress is observed by polling Status.
type Radio interface {
	// Enable powers the radio and enters the station role.
	Enable() error
	// Disable powers the radio fully down and leaves the station role off.
	Disable()
	// SetStationAddr applies the fixed addressing. Called after every Enable.
	SetStationAddr(addr StaticAddr) error
	// Join starts a standard full-discovery association.
	Join(creds Credentials) error
	// JoinFast starts an association pinned to a remembered channel and
	// access point, skipping discovery. Stacks without pinning support may
	// treat the hint as advisory and perform a standard join.
	JoinFast(creds Credentials, channel uint8, bssid [6]byte) error
	// Status reports the current association state.
	Status() LinkStatus
	// AP reports the channel and BSSID actually negotiated. Only meaningful
	// while associated; errcode.Unsupported when the stack cannot say.
	AP() (channel uint8, bssid [6]byte, err error)
}

// Sleeper enters the low-power state for d and, on real hardware, does not
// return: the next wake restarts the firmware from the top. Host
// implementations return after d (or a scaled stand-in) so cycles can loop.
type Sleeper interface {
	DeepSleep(d time.Duration)
}
