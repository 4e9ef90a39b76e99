package main

import (
	"context"
	"time"

	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/config"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/node"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/publish"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/rtcmem"
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/wifilink"
)

// defaultDevice selects which embedded config this image runs with.
const defaultDevice = "esp-node"

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	cfg, err := config.Load(defaultDevice)
	if err != nil {
		// Without config there is nothing useful to do awake. Sleep the
		// default interval and let the next boot retry.
		println("config:", err.Error())
		platformSleeper().DeepSleep(10 * time.Minute)
		return
	}

	ctrl := buildController(cfg)

	// Real hardware never leaves the first iteration: deep sleep resets the
	// chip and the next wake restarts main. Host builds return from sleep,
	// so the loop stands in for the wake signal.
	for {
		ctrl.RunCycle(context.Background())
	}
}

func buildController(cfg config.Device) *node.Controller {
	radio := platformRadio()
	store := rtcmem.NewStore(platformRegion())
	sleeper := platformSleeper()

	machine := wifilink.NewMachine(radio, store, sleeper, wifilink.Config{
		Tick:          cfg.Tick(),
		FallbackTicks: cfg.FallbackTicks,
		GiveUpTicks:   cfg.GiveUpTicks,
		ResetPause:    cfg.ResetPause(),
		SleepInterval: cfg.SleepInterval(),
		Addr:          wifilink.StaticAddr{IP: cfg.IP, Gateway: cfg.Gateway, Mask: cfg.Mask},
		Diagnostics:   cfg.Diagnostics,
	})

	return node.New(node.Config{
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
		Reader:  platformReader(),
		Session: platformSession(),
		Sleeper: sleeper,
	})
}
