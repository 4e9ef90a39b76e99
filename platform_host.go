//go:build !tinygo && !baremetal

// This file is built only for non-embedded targets (host-based testing).
package main

import (
	"log/slog"
	"time"

	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/publish"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/rtcmem"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/sensor"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/wifilink"
)

// Host builds run the full duty cycle against a scripted radio and a
// file-backed record region, so repeated runs exercise the fast path the way
// repeated wakes do on hardware. cmd/nodesim is the configurable harness;
// this is just enough to run the firmware binary on a workstation.

func platformRadio() wifilink.Radio {
	return &wifilink.Sim{
		FastUpAfter: 2,
		SlowUpAfter: 8,
		Channel:     6,
		BSSID:       [6]byte{0x02, 0x13, 0x37, 0xAB, 0xCD, 0xEF},
	}
}

func platformRegion() rtcmem.Region {
	return &rtcmem.FileRegion{Path: "rtcmem.bin"}
}

func platformReader() sensor.Reader {
	return sensor.Fixed(21.5, 48)
}

func platformSession() publish.Session {
	return publish.NewPahoSession(slog.Default())
}

func platformSleeper() wifilink.Sleeper {
	return hostSleeper{}
}

type hostSleeper struct{}

func (hostSleeper) DeepSleep(d time.Duration) {
	slog.Info("deep sleep", "interval", d)
	time.Sleep(d)
}
