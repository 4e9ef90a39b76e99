package sensor

// Fixed returns a Reader that always reports the same reading. Used by host
// builds and the simulator, and handy in tests.
func Fixed(temperature, humidity float32) Reader {
	return fixedReader{Reading{Temperature: temperature, Humidity: humidity}}
}

// Failing returns a Reader whose reads always fail.
func Failing() Reader {
	return fixedReader{Invalid()}
}

type fixedReader struct{ r Reading }

func (f fixedReader) Read() Reading { return f.r }
