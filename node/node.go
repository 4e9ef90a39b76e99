// Package node runs one full wake cycle: radio off, read, encode, connect,
// publish, sleep. Every path out of RunCycle ends in exactly one deep sleep,
// so the device can never sit awake waiting on an unreachable network.
package node

import (
	"context"
	"time"

	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/payload"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/publish"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/rtcmem"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/sensor"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/wifilink"
)

// Config is the per-cycle policy: where readings go and how long to sleep.
type Config struct {
	Topic         string
	Publish       publish.Options
	Credentials   wifilink.Credentials
	SleepInterval time.Duration
	Diagnostics   bool
}

// Deps are the collaborators one cycle drives. Encode may be nil, in which
// case the default payload encoder is used.
type Deps struct {
	Radio   wifilink.Radio
	Store   *rtcmem.Store
	Machine *wifilink.Machine
	Reader  sensor.Reader
	Encode  func(sensor.Reading) []byte
	Session publish.Session
	Sleeper wifilink.Sleeper
}

// Controller executes the duty cycle. One instance, one linear task; there
// are no concurrent sessions.
type Controller struct {
	cfg Config
	d   Deps
}

func New(cfg Config, d Deps) *Controller {
	if d.Encode == nil {
		d.Encode = payload.Encode
	}
	return &Controller{cfg: cfg, d: d}
}

// RunCycle is invoked once per wake event. Its only externally visible effect
// is scheduling the next wake: it returns after the deep sleep call (which on
// real hardware never returns at all).
func (c *Controller) RunCycle(ctx context.Context) {
	// Boot default leaves the radio powered; kill it before anything else so
	// no energy is spent before a connection is even attempted.
	c.d.Radio.Disable()

	// The reading is taken regardless of network state, and a failed read is
	// carried as sentinel values rather than aborting: a skipped cycle wastes
	// the radio-on budget for nothing.
	reading := c.d.Reader.Read()
	if !reading.Valid() {
		c.diag("sensor read failed, publishing sentinels")
	}
	body := c.d.Encode(reading)

	hint, haveHint := c.d.Store.Load()
	out := c.d.Machine.Attempt(c.cfg.Credentials, hint, haveHint)
	if !out.Connected {
		// Give-up path: the machine has already disabled the radio and taken
		// this cycle's deep sleep.
		return
	}

	c.publishReading(ctx, body)

	c.d.Session.Disconnect(ctx)
	c.d.Radio.Disable()
	c.d.Sleeper.DeepSleep(c.cfg.SleepInterval)
}

// publishReading hands the encoded body to the session. Failures are logged
// only; the cycle proceeds to cleanup and sleep either way.
func (c *Controller) publishReading(ctx context.Context, body []byte) {
	if err := c.d.Session.Connect(ctx, c.cfg.Publish); err != nil {
		c.diag("session connect failed: " + err.Error())
		return
	}
	if err := c.d.Session.Publish(ctx, c.cfg.Topic, body); err != nil {
		c.diag("publish failed: " + err.Error())
	}
}

func (c *Controller) diag(msg string) {
	if c.cfg.Diagnostics {
		println("node:", msg)
	}
}
