// Package sensor defines the reading contract consumed by the duty cycle.
//
// A failed read is data, not an error: either field may be NaN and the cycle
// carries on regardless, publishing sentinel values rather than wasting the
// radio-on budget on a skipped cycle.
package sensor

// Reading is one temperature/humidity sample. NaN in either field signals a
// failed read of that quantity.
type Reading struct {
	Temperature float32 // degrees Celsius
	Humidity    float32 // percent relative humidity
}

// Reader produces one reading per wake cycle.
type Reader interface {
	Read() Reading
}

// Invalid returns a Reading with both fields NaN.
func Invalid() Reading {
	nan := nan32()
	return Reading{Temperature: nan, Humidity: nan}
}

// Valid reports whether both fields hold numbers.
func (r Reading) Valid() bool {
	return r.Temperature == r.Temperature && r.Humidity == r.Humidity
}

// nan32 builds a float32 NaN without pulling in math on MCU builds.
func nan32() float32 {
	f := float32(0)
	return f / f
}
