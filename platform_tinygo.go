//go:build tinygo || baremetal

// This file is built only for embedded targets (real radio and sensor).
package main

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/netlink"
	"tinygo.org/x/drivers/netlink/probe"

	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/errcode"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/publish"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/rtcmem"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/sensor"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/wifilink"
)

// dhtPin is where the DHT11 data line sits on the reference hardware.
const dhtPin = machine.Pin(2)

func platformRadio() wifilink.Radio { return &netlinkRadio{} }

// rtcRegion keeps the record in RAM, which survives the timed sleep below but
// not a reset. Ports with a true sleep-surviving window swap this out.
var rtcRegion rtcmem.MemRegion

func platformRegion() rtcmem.Region { return &rtcRegion }

func platformReader() sensor.Reader { return sensor.NewDHT11(dhtPin) }

func platformSession() publish.Session { return &publish.DiagSession{} }

func platformSleeper() wifilink.Sleeper { return mcuSleeper{} }

type mcuSleeper struct{}

func (mcuSleeper) DeepSleep(d time.Duration) {
	// TODO: use the SoC deep-sleep register once TinyGo exposes it for this
	// target; a timed wait keeps the duty cycle intact meanwhile.
	time.Sleep(d)
}

// netlinkRadio drives association through the board's netlink stack. The
// stack runs its own blocking handshake inside NetConnect, so the machine's
// poll loop observes a settled Up/Down rather than a Joining progression.
type netlinkRadio struct {
	link netlink.Netlinker
	up   bool
}

func (r *netlinkRadio) Enable() error {
	if r.link == nil {
		r.link, _ = probe.Probe()
	}
	return nil
}

func (r *netlinkRadio) Disable() {
	if r.link != nil && r.up {
		r.link.NetDisconnect()
		r.up = false
	}
}

// SetStationAddr is not supported: the netlink stack manages its own
// addressing. The machine treats this as best-effort.
func (r *netlinkRadio) SetStationAddr(addr wifilink.StaticAddr) error {
	return errcode.Unsupported
}

func (r *netlinkRadio) Join(creds wifilink.Credentials) error {
	err := r.link.NetConnect(&netlink.ConnectParams{
		Ssid:       creds.SSID,
		Passphrase: creds.Passphrase,
	})
	r.up = err == nil
	return err
}

// JoinFast cannot pin a channel or BSSID through netlink; the remembered
// link is advisory only on this port and the standard join is issued.
func (r *netlinkRadio) JoinFast(creds wifilink.Credentials, channel uint8, bssid [6]byte) error {
	return r.Join(creds)
}

func (r *netlinkRadio) Status() wifilink.LinkStatus {
	if r.up {
		return wifilink.LinkUp
	}
	return wifilink.LinkDown
}

// AP is not reported by the netlink API, so nothing is persisted on this
// port and every wake performs a standard join.
func (r *netlinkRadio) AP() (uint8, [6]byte, error) {
	return 0, [6]byte{}, errcode.Unsupported
}
