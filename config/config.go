// config/config.go
package config

import (
	"errors"
	"time"

	"github.com/andreyvit/tinyjson"

	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/x/mathx"
)

// -----------------------------------------------------------------------------
// String constants (live in flash, not RAM)
// -----------------------------------------------------------------------------

const (
	defaultTopicPrefix = "home/"
	defaultPort        = 1883

	// Duty-cycle defaults matching the deployed fleet: 10 minute sleep,
	// 100 ms tick, fast-path probe of 100 ticks, hard ceiling of 600 ticks
	// (one minute of radio-on time, worst case).
	defaultSleepMinutes  = 10
	defaultTickMS        = 100
	defaultFallbackTicks = 100
	defaultGiveUpTicks   = 600
	defaultResetPauseMS  = 100
)

// EmbeddedLookup resolves the raw JSON for a device ID. Overridable in tests
// and by alternate provisioning schemes.
var EmbeddedLookup = func(device string) ([]byte, bool) {
	b, ok := embeddedConfigs[device]
	return b, ok
}

// Device is the full configuration surface of one node build. All durations
// and thresholds are sanitized into safe bounds on load; tick counts are the
// time unit everywhere, so the worst-case wall-clock spent connecting is
// TickMS * GiveUpTicks milliseconds.
type Device struct {
	ID         string
	SSID       string
	Passphrase string

	Server   string
	Port     uint16
	Username string
	Password string

	TopicPrefix string

	SleepMinutes  int
	TickMS        int
	FallbackTicks int // tick at which a stalled fast path is abandoned
	GiveUpTicks   int // hard ceiling, counted from the start of the attempt
	ResetPauseMS  int

	IP      [4]byte
	Gateway [4]byte
	Mask    [4]byte

	Diagnostics bool
}

// Load resolves, parses and sanitizes the embedded config for a device.
func Load(device string) (Device, error) {
	raw, ok := EmbeddedLookup(device)
	if !ok || len(raw) == 0 {
		return Device{}, errors.New("no embedded config for device: " + device)
	}

	r := tinyjson.Raw(raw)
	val := r.Value()
	r.EnsureEOF()

	m, ok := val.(map[string]any)
	if !ok {
		return Device{}, errors.New("embedded config is not a JSON object")
	}

	d := Device{
		ID:            device,
		SSID:          str(m, "ssid", ""),
		Passphrase:    str(m, "passphrase", ""),
		Server:        str(m, "server", ""),
		Port:          uint16(num(m, "port", defaultPort)),
		Username:      str(m, "username", ""),
		Password:      str(m, "password", ""),
		TopicPrefix:   str(m, "topic_prefix", defaultTopicPrefix),
		SleepMinutes:  num(m, "sleep_minutes", defaultSleepMinutes),
		TickMS:        num(m, "tick_ms", defaultTickMS),
		FallbackTicks: num(m, "fallback_ticks", defaultFallbackTicks),
		GiveUpTicks:   num(m, "giveup_ticks", defaultGiveUpTicks),
		ResetPauseMS:  num(m, "reset_pause_ms", defaultResetPauseMS),
		Diagnostics:   flag(m, "diagnostics", false),
	}
	d.IP, _ = parseIPv4(str(m, "ip", ""))
	d.Gateway, _ = parseIPv4(str(m, "gateway", ""))
	d.Mask, _ = parseIPv4(str(m, "mask", ""))

	if d.SSID == "" {
		return Device{}, errors.New("config missing ssid")
	}
	return d.sanitize(), nil
}

func (d Device) sanitize() Device {
	d.SleepMinutes = mathx.Clamp(d.SleepMinutes, 1, 24*60)
	d.TickMS = mathx.Clamp(d.TickMS, 10, 1000)
	d.FallbackTicks = mathx.Clamp(d.FallbackTicks, 1, 10000)
	d.GiveUpTicks = mathx.Clamp(d.GiveUpTicks, d.FallbackTicks+1, 20000)
	d.ResetPauseMS = mathx.Clamp(d.ResetPauseMS, 10, 5000)
	return d
}

// Topic is where readings go: prefix + device ID, e.g. "home/esp-node".
func (d Device) Topic() string { return d.TopicPrefix + d.ID }

// ClientID identifies this device to the broker.
func (d Device) ClientID() string { return d.ID }

func (d Device) SleepInterval() time.Duration {
	return time.Duration(d.SleepMinutes) * time.Minute
}

func (d Device) Tick() time.Duration {
	return time.Duration(d.TickMS) * time.Millisecond
}

func (d Device) ResetPause() time.Duration {
	return time.Duration(d.ResetPauseMS) * time.Millisecond
}

// -----------------------------------------------------------------------------
// JSON field helpers
// -----------------------------------------------------------------------------

func str(m map[string]any, key, def string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return def
}

func num(m map[string]any, key string, def int) int {
	if v, ok := m[key].(float64); ok {
		return int(v)
	}
	return def
}

func flag(m map[string]any, key string, def bool) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return def
}

// parseIPv4 parses a dotted quad without pulling in net.
func parseIPv4(s string) (out [4]byte, ok bool) {
	part, idx := 0, 0
	seen := false
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '.' {
			if !seen || idx > 3 {
				return [4]byte{}, false
			}
			out[idx] = byte(part)
			idx++
			part, seen = 0, false
			continue
		}
		c := s[i]
		if c < '0' || c > '9' {
			return [4]byte{}, false
		}
		part = part*10 + int(c-'0')
		if part > 255 {
			return [4]byte{}, false
		}
		seen = true
	}
	return out, idx == 4
}
