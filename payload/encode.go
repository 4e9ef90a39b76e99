// Package payload renders a reading into the transmit-ready body.
//
// Output is a compact self-contained JSON object with one-decimal fixed
// point, built with an allocation-free digit writer so the hot path never
// touches fmt or strconv. Failed fields encode as null.
package payload

import (
	"github.com/zmuzsik/esp-deepsleep-temp-wifi-off/sensor"
)

// MaxSize is the ceiling on an encoded body. Encode output always fits.
const MaxSize = 128

// Encode renders r, e.g. {"temperature":23.4,"humidity":51.0}.
func Encode(r sensor.Reading) []byte {
	buf := make([]byte, 0, MaxSize)
	buf = append(buf, `{"temperature":`...)
	buf = appendDeci(buf, r.Temperature)
	buf = append(buf, `,"humidity":`...)
	buf = appendDeci(buf, r.Humidity)
	buf = append(buf, '}')
	return buf
}

// appendDeci writes v rounded to one decimal place, or null for NaN.
func appendDeci(dst []byte, v float32) []byte {
	if v != v {
		return append(dst, "null"...)
	}
	if v < 0 {
		dst = append(dst, '-')
		v = -v
	}
	d := uint32(v*10 + 0.5) // deci-units, round half up
	dst = appendUint(dst, d/10)
	dst = append(dst, '.')
	return append(dst, byte('0'+d%10))
}

// appendUint writes base-10 digits backwards into a scratch buffer.
// No allocations; no fmt/strconv dependency.
func appendUint(dst []byte, n uint32) []byte {
	var tmp [10]byte
	i := len(tmp)
	if n == 0 {
		i--
		tmp[i] = '0'
	}
	for n > 0 {
		i--
		tmp[i] = byte('0' + n%10)
		n /= 10
	}
	return append(dst, tmp[i:]...)
}
