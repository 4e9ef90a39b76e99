package errcode

// Code is a stable, short error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	LinkTimeout  Code = "link_timeout"  // association retry budget exhausted
	LinkDown     Code = "link_down"     // radio up but not associated
	RadioOff     Code = "radio_off"     // operation needs an enabled radio
	RegionFault  Code = "region_fault"  // persisted-memory read/write failed
	StoreInvalid Code = "store_invalid" // persisted record failed its checksum
	NotConnected Code = "not_connected" // publish before session connect
	Unsupported  Code = "unsupported"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
