//go:build tinygo || baremetal

package sensor

import (
	"machine"

	"tinygo.org/x/drivers/dht"
)

// dhtReader adapts the DHT11 driver to the Reader contract. Driver errors
// (checksum failure, no response) degrade to NaN fields rather than aborting
// the cycle.
type dhtReader struct {
	dev dht.DummyDevice
}

// NewDHT11 wires a DHT11 on the given pin (GPIO2 on the reference hardware).
func NewDHT11(pin machine.Pin) Reader {
	return &dhtReader{dev: dht.New(pin, dht.DHT11)}
}

func (r *dhtReader) Read() Reading {
	if err := r.dev.ReadMeasurements(); err != nil {
		return Invalid()
	}
	out := Invalid()
	if t, err := r.dev.TemperatureFloat(dht.C); err == nil {
		out.Temperature = t
	}
	if h, err := r.dev.HumidityFloat(); err == nil {
		out.Humidity = h
	}
	return out
}
