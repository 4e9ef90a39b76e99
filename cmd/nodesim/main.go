// Command nodesim drives the firmware's duty cycle on a workstation: a
// scripted radio stands in for the WiFi hardware and a file stands in for
// the sleep-surviving memory region, so consecutive cycles exercise the
// fast-reconnect path exactly the way consecutive wakes do on the device.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/config"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/node"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/publish"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/rtcmem"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/sensor"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/wifilink"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/x/mathx"
)

func main() {
	var (
		device     = flag.String("device", "esp-node", "embedded config to run")
		cycles     = flag.Int("cycles", 3, "wake cycles to simulate")
		fastUp     = flag.Int("fast-up", 2, "status polls until the fast path associates (-1: never)")
		slowUp     = flag.Int("slow-up", 8, "status polls until the slow path associates (-1: never)")
		statePath  = flag.String("state", "nodesim-rtc.bin", "file backing the persisted link record")
		broker     = flag.Bool("broker", false, "publish to the configured MQTT broker instead of logging")
		sleepScale = flag.Int("sleep-scale", 600, "divide deep-sleep intervals by this factor")
		temp       = flag.Float64("temperature", 21.5, "simulated temperature reading")
		hum        = flag.Float64("humidity", 48, "simulated humidity reading")
		failSensor = flag.Bool("fail-sensor", false, "simulate a failed sensor read")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(*device)
	if err != nil {
		logger.Error("config", "error", err)
		os.Exit(1)
	}

	radio := &wifilink.Sim{
		FastUpAfter: *fastUp,
		SlowUpAfter: *slowUp,
		Channel:     6,
		BSSID:       [6]byte{0x02, 0x13, 0x37, 0xAB, 0xCD, 0xEF},
	}
	store := rtcmem.NewStore(&rtcmem.FileRegion{Path: *statePath})
	sleeper := &scaledSleeper{logger: logger, scale: mathx.Clamp(*sleepScale, 1, 100000)}

	machine := wifilink.NewMachine(radio, store, sleeper, wifilink.Config{
		Tick:          cfg.Tick(),
		FallbackTicks: cfg.FallbackTicks,
		GiveUpTicks:   cfg.GiveUpTicks,
		ResetPause:    cfg.ResetPause(),
		SleepInterval: cfg.SleepInterval(),
		Addr:          wifilink.StaticAddr{IP: cfg.IP, Gateway: cfg.Gateway, Mask: cfg.Mask},
		Diagnostics:   cfg.Diagnostics,
	})

	var session publish.Session = &publish.DiagSession{}
	if *broker {
		session = publish.NewPahoSession(logger)
	}

	reader := sensor.Fixed(float32(*temp), float32(*hum))
	if *failSensor {
		reader = sensor.Failing()
	}

	ctrl := node.New(node.Config{
		Topic: cfg.Topic(),
		Publish: publish.Options{
			Server:   cfg.Server,
			Port:     cfg.Port,
			ClientID: cfg.ClientID(),
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Credentials:   wifilink.Credentials{SSID: cfg.SSID, Passphrase: cfg.Passphrase},
		SleepInterval: cfg.SleepInterval(),
		Diagnostics:   cfg.Diagnostics,
	}, node.Deps{
		Radio:   radio,
		Store:   store,
		Machine: machine,
		Reader:  reader,
		Session: session,
		Sleeper: sleeper,
	})

	for i := 1; i <= *cycles; i++ {
		_, hadRecord := store.Load()
		logger.Info("wake", "cycle", i, "fast_path_record", hadRecord)
		ctrl.RunCycle(context.Background())
		logger.Info("cycle complete",
			"cycle", i,
			"polls_total", radio.TotalPolls(),
			"fast_joins", radio.FastJoins,
			"slow_joins", radio.SlowJoins,
			"sleeps", sleeper.calls,
		)
	}
}

// scaledSleeper compresses deep-sleep intervals so a 10 minute duty cycle
// replays in about a second.
type scaledSleeper struct {
	logger *slog.Logger
	scale  int
	calls  int
}

func (s *scaledSleeper) DeepSleep(d time.Duration) {
	s.calls++
	scaled := d / time.Duration(s.scale)
	s.logger.Info("deep sleep", "interval", d, "simulated", scaled)
	time.Sleep(scaled)
}
