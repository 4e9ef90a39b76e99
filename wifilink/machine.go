package wifilink

import (
	"time"

	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/rtcmem"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/x/mathx"
)

// Path names which association path produced the outcome.
type Path uint8

const (
	PathNone Path = iota
	PathFast
	PathSlow
)

func (p Path) String() string {
	switch p {
	case PathFast:
		return "fast"
	case PathSlow:
		return "slow"
	default:
		return "none"
	}
}

// Outcome is the result of one connection attempt. When Connected is false
// the machine has already disabled the radio and taken the deep sleep for
// this cycle; the caller must not sleep again.
type Outcome struct {
	Connected bool
	Channel   uint8
	BSSID     [6]byte
	Ticks     int // polling ticks spent, a proxy for radio-on time
	Path      Path
}

// Config bounds one connection attempt. All limits are tick counts, not wall
// clock: the effective worst-case radio-on time is Tick * GiveUpTicks.
type Config struct {
	// Tick is the fixed polling period.
	Tick time.Duration
	// FallbackTicks is the tick at which a stalled fast-path attempt is
	// abandoned for a standard join. At most one fallback per cycle.
	FallbackTicks int
	// GiveUpTicks is the hard ceiling, counted from the start of the whole
	// attempt and never reset by the fallback.
	GiveUpTicks int
	// ResetPause is the settle time between radio off and on during the
	// fast-to-slow fallback reset.
	ResetPause time.Duration
	// SleepInterval is handed to the sleeper on the give-up path.
	SleepInterval time.Duration
	// Addr is the fixed station addressing.
	Addr StaticAddr
	// Diagnostics gates progress logging.
	Diagnostics bool
}

// sanitize coerces the config into usable bounds. GiveUpTicks always ends up
// strictly above FallbackTicks so the ceiling can fire on the slow path too.
func (c Config) sanitize() Config {
	c.Tick = mathx.Clamp(c.Tick, 10*time.Millisecond, time.Second)
	c.FallbackTicks = mathx.Clamp(c.FallbackTicks, 1, 10000)
	c.GiveUpTicks = mathx.Clamp(c.GiveUpTicks, c.FallbackTicks+1, 20000)
	if c.ResetPause <= 0 {
		c.ResetPause = 100 * time.Millisecond
	}
	if c.SleepInterval <= 0 {
		c.SleepInterval = 10 * time.Minute
	}
	return c
}

// Machine is the reconnect state machine:
// Idle -> FastAttempt -> (Connected | SlowAttempt) -> (Connected | GiveUp).
type Machine struct {
	radio   Radio
	store   *rtcmem.Store
	sleeper Sleeper
	cfg     Config
}

func NewMachine(radio Radio, store *rtcmem.Store, sleeper Sleeper, cfg Config) *Machine {
	return &Machine{radio: radio, store: store, sleeper: sleeper, cfg: cfg.sanitize()}
}

// Attempt runs one full connection attempt. A valid hint selects the fast
// path; without one the machine goes straight to a standard join. On success
// the negotiated channel and address are persisted so the next wake can skip
// discovery. On give-up the radio is disabled and the sleeper invoked before
// the outcome is returned.
func (m *Machine) Attempt(creds Credentials, hint rtcmem.LinkRecord, haveHint bool) Outcome {
	if err := m.radio.Enable(); err != nil {
		m.diag("radio enable failed: " + err.Error())
		return m.giveUp(0, PathNone)
	}
	_ = m.radio.SetStationAddr(m.cfg.Addr)

	path := PathSlow
	if haveHint {
		path = PathFast
		m.diagN("fast join, channel", int(hint.Channel))
		if err := m.radio.JoinFast(creds, hint.Channel, hint.BSSID); err != nil {
			m.diag("fast join refused, standard join")
			path = PathSlow
			_ = m.radio.Join(creds)
		}
	} else {
		m.diag("no persisted link, standard join")
		_ = m.radio.Join(creds)
	}

	for tick := 1; ; tick++ {
		time.Sleep(m.cfg.Tick)
		if m.radio.Status() == LinkUp {
			return m.connected(tick, path)
		}
		if tick >= m.cfg.GiveUpTicks {
			m.diagN("give up at tick", tick)
			return m.giveUp(tick, path)
		}
		if path == PathFast && tick == m.cfg.FallbackTicks {
			m.diag("fast path stalled, falling back")
			m.resetRadio()
			_ = m.radio.Join(creds)
			path = PathSlow
		}
	}
}

func (m *Machine) connected(ticks int, path Path) Outcome {
	out := Outcome{Connected: true, Ticks: ticks, Path: path}
	ch, bssid, err := m.radio.AP()
	if err == nil {
		out.Channel = ch
		out.BSSID = bssid
		m.store.Save(rtcmem.LinkRecord{Channel: ch, BSSID: bssid})
	}
	m.diagN("associated on "+path.String()+" path, ticks", ticks)
	return out
}

// giveUp powers everything down and spends this cycle's sleep. Nothing is
// persisted: a failed cycle must not disturb a previously good record.
func (m *Machine) giveUp(ticks int, path Path) Outcome {
	m.radio.Disable()
	m.sleeper.DeepSleep(m.cfg.SleepInterval)
	return Outcome{Connected: false, Ticks: ticks, Path: path}
}

// resetRadio performs the full off/settle/on sequence between the fast and
// slow attempts so the standard join starts from a clean radio state.
func (m *Machine) resetRadio() {
	m.radio.Disable()
	time.Sleep(m.cfg.ResetPause)
	if err := m.radio.Enable(); err != nil {
		return // next Status poll stays down; the tick ceiling still fires
	}
	_ = m.radio.SetStationAddr(m.cfg.Addr)
}

func (m *Machine) diag(msg string) {
	if m.cfg.Diagnostics {
		println("wifilink:", msg)
	}
}

func (m *Machine) diagN(msg string, n int) {
	if m.cfg.Diagnostics {
		println("wifilink:", msg, n)
	}
}
